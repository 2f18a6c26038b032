// Package ui holds the embedded HTML templates.
package ui

import "embed"

//go:embed "html"
var Files embed.FS
