// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/scarlettos/scpkg/pkg/types"
)

// timeLayout is how installed-at timestamps appear in human output.
const timeLayout = "2006-01-02 15:04:05 MST"

// Renderer writes command results as plain text, one fact per line.
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders a command result as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.InstallResult:
		return r.renderInstall(v)
	case *types.UninstallResult:
		return r.renderUninstall(v)
	case *types.ListResult:
		return r.renderList(v)
	case *types.SearchResult:
		return r.renderSearch(v)
	case *types.InfoResult:
		return r.renderInfo(v)
	case *types.GenConfigResult:
		return r.renderGenConfig(v)
	default:
		// Unknown result types still produce something readable
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) renderInstall(res *types.InstallResult) error {
	verb := "Installed"
	if res.DryRun {
		verb = "Would install"
	}
	if _, err := fmt.Fprintf(r.output, "%s %s %s (%s)\n",
		verb, res.Package.Name, res.Package.Version,
		countNoun(len(res.InstalledFiles), "file")); err != nil {
		return err
	}
	return r.renderWarnings(res.Warnings)
}

func (r *Renderer) renderUninstall(res *types.UninstallResult) error {
	verb := "Removed"
	if res.DryRun {
		verb = "Would remove"
	}
	if _, err := fmt.Fprintf(r.output, "%s %s %s (%s)\n",
		verb, res.Package.Name, res.Package.Version,
		countNoun(res.RemovedCount(), "file")); err != nil {
		return err
	}
	return r.renderWarnings(res.Warnings)
}

func (r *Renderer) renderList(res *types.ListResult) error {
	if len(res.Packages) == 0 {
		if _, err := fmt.Fprintln(r.output, "No packages installed"); err != nil {
			return err
		}
		return r.renderWarnings(res.Warnings)
	}
	for _, pkg := range res.Packages {
		if err := r.renderPackageLine(pkg); err != nil {
			return err
		}
	}
	return r.renderWarnings(res.Warnings)
}

func (r *Renderer) renderSearch(res *types.SearchResult) error {
	if len(res.Packages) == 0 {
		if _, err := fmt.Fprintf(r.output, "No packages found matching '%s'\n", res.Query); err != nil {
			return err
		}
		return r.renderWarnings(res.Warnings)
	}
	for _, pkg := range res.Packages {
		if err := r.renderPackageLine(pkg); err != nil {
			return err
		}
	}
	return r.renderWarnings(res.Warnings)
}

func (r *Renderer) renderInfo(res *types.InfoResult) error {
	pkg := res.Package
	if _, err := fmt.Fprintf(r.output, "Name:        %s\n", pkg.Name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.output, "Version:     %s\n", pkg.Version); err != nil {
		return err
	}
	if pkg.Description != "" {
		if _, err := fmt.Fprintf(r.output, "Description: %s\n", pkg.Description); err != nil {
			return err
		}
	}
	if !pkg.InstalledAt.IsZero() {
		if _, err := fmt.Fprintf(r.output, "Installed:   %s\n", pkg.InstalledAt.Format(timeLayout)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(r.output, "Files:       %d\n", len(pkg.InstalledFiles)); err != nil {
		return err
	}
	for _, file := range pkg.InstalledFiles {
		if _, err := fmt.Fprintf(r.output, "  %s\n", file); err != nil {
			return err
		}
	}
	return r.renderWarnings(res.Warnings)
}

func (r *Renderer) renderGenConfig(res *types.GenConfigResult) error {
	if len(res.FilesWritten) > 0 {
		for _, path := range res.FilesWritten {
			if _, err := fmt.Fprintf(r.output, "Written %s\n", path); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := fmt.Fprintln(r.output, strings.TrimRight(res.ConfigContent, "\n"))
	return err
}

func (r *Renderer) renderPackageLine(pkg types.PackageRecord) error {
	line := fmt.Sprintf("  %s (%s)", pkg.Name, pkg.Version)
	if pkg.Description != "" {
		line += " - " + pkg.Description
	}
	_, err := fmt.Fprintln(r.output, line)
	return err
}

func (r *Renderer) renderWarnings(warnings []types.Warning) error {
	for _, w := range warnings {
		line := "warning: " + w.Message
		if w.Path != "" {
			line += ": " + w.Path
		}
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	return nil
}

// countNoun formats a count with its singular or plural noun.
func countNoun(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
