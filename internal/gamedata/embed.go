// Package gamedata provides the embedded character catalog and utilities for loading it.
package gamedata

import "embed"

// dataFS holds the JSON catalogs compiled into the binary.
//
//go:embed *.json
var dataFS embed.FS
