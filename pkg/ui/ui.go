// Package ui provides a unified interface for rendering command results in
// different formats. It supports terminal (styled), text (plain), and JSON
// output.
package ui

import (
	"fmt"
	"io"

	"github.com/scarlettos/scpkg/pkg/ui/json"
	"github.com/scarlettos/scpkg/pkg/ui/terminal"
	"github.com/scarlettos/scpkg/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a command result
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple one-line message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for the given format. FormatAuto detects
// terminal capabilities and falls back to plain text for anything that is
// not an interactive color terminal.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(output), output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
