package battle

// Log is a bounded battle log that keeps the most recent entries.
// When full, appending evicts the oldest entry.
type Log struct {
	buf   []string
	head  int // Index of the oldest entry
	count int
}

// NewLog creates a log holding at most capacity entries.
func NewLog(capacity int) *Log {
	if capacity < 1 {
		capacity = 1
	}
	return &Log{buf: make([]string, capacity)}
}

// Append adds an entry, evicting the oldest one if the log is full.
func (l *Log) Append(entry string) {
	if l.count < len(l.buf) {
		l.buf[(l.head+l.count)%len(l.buf)] = entry
		l.count++
		return
	}
	l.buf[l.head] = entry
	l.head = (l.head + 1) % len(l.buf)
}

// Entries returns a copy of the entries, oldest first.
func (l *Log) Entries() []string {
	out := make([]string, l.count)
	for i := range out {
		out[i] = l.buf[(l.head+i)%len(l.buf)]
	}
	return out
}

// Clear removes all entries.
func (l *Log) Clear() {
	clear(l.buf)
	l.head = 0
	l.count = 0
}
