// Package data embeds the built-in lexicon and template catalog.
package data

import _ "embed"

//go:embed catalog.yaml
var Catalog []byte
