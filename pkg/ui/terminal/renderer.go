// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/scarlettos/scpkg/pkg/types"
	"github.com/scarlettos/scpkg/pkg/ui/styles"
)

const timeLayout = "2006-01-02 15:04:05 MST"

// Renderer writes command results with lipgloss styling applied. The
// style registry decides how each semantic element looks; this renderer
// only decides which element a piece of text is.
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders a command result with terminal styling
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
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error with error styling
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "%s %v\n", styled("Error", "Error:"), err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) renderInstall(res *types.InstallResult) error {
	verb := styled("Success", "Installed")
	if res.DryRun {
		verb = styled("Info", "Would install")
	}
	if _, err := fmt.Fprintf(r.output, "%s %s %s (%s)\n",
		verb,
		styled("PackageName", res.Package.Name),
		styled("Version", res.Package.Version),
		countNoun(len(res.InstalledFiles), "file")); err != nil {
		return err
	}
	return r.renderWarnings(res.Warnings)
}

func (r *Renderer) renderUninstall(res *types.UninstallResult) error {
	verb := styled("Success", "Removed")
	if res.DryRun {
		verb = styled("Info", "Would remove")
	}
	if _, err := fmt.Fprintf(r.output, "%s %s %s (%s)\n",
		verb,
		styled("PackageName", res.Package.Name),
		styled("Version", res.Package.Version),
		countNoun(res.RemovedCount(), "file")); err != nil {
		return err
	}
	return r.renderWarnings(res.Warnings)
}

func (r *Renderer) renderList(res *types.ListResult) error {
	if len(res.Packages) == 0 {
		if _, err := fmt.Fprintln(r.output, styled("Muted", "No packages installed")); err != nil {
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
		msg := fmt.Sprintf("No packages found matching '%s'", res.Query)
		if _, err := fmt.Fprintln(r.output, styled("Muted", msg)); err != nil {
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
	rows := []struct {
		label string
		value string
	}{
		{"Name:       ", styled("PackageName", pkg.Name)},
		{"Version:    ", pkg.Version},
	}
	if pkg.Description != "" {
		rows = append(rows, struct{ label, value string }{"Description:", pkg.Description})
	}
	if !pkg.InstalledAt.IsZero() {
		rows = append(rows, struct{ label, value string }{"Installed:  ", pkg.InstalledAt.Format(timeLayout)})
	}
	rows = append(rows, struct{ label, value string }{"Files:      ", fmt.Sprintf("%d", len(pkg.InstalledFiles))})

	for _, row := range rows {
		if _, err := fmt.Fprintf(r.output, "%s %s\n", styled("Bold", row.label), row.value); err != nil {
			return err
		}
	}
	for _, file := range pkg.InstalledFiles {
		if _, err := fmt.Fprintf(r.output, "  %s\n", styled("FilePath", file)); err != nil {
			return err
		}
	}
	return r.renderWarnings(res.Warnings)
}

func (r *Renderer) renderGenConfig(res *types.GenConfigResult) error {
	if len(res.FilesWritten) > 0 {
		for _, path := range res.FilesWritten {
			line := fmt.Sprintf("%s %s", styled("Success", "Written"), styled("FilePath", path))
			if _, err := fmt.Fprintln(r.output, line); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := fmt.Fprintln(r.output, strings.TrimRight(res.ConfigContent, "\n"))
	return err
}

func (r *Renderer) renderPackageLine(pkg types.PackageRecord) error {
	line := fmt.Sprintf("  %s (%s)",
		styled("PackageName", pkg.Name), styled("Version", pkg.Version))
	if pkg.Description != "" {
		line += " - " + styled("Muted", pkg.Description)
	}
	_, err := fmt.Fprintln(r.output, line)
	return err
}

func (r *Renderer) renderWarnings(warnings []types.Warning) error {
	for _, w := range warnings {
		line := styled("Warning", "warning:") + " " + w.Message
		if w.Path != "" {
			line += ": " + styled("FilePath", w.Path)
		}
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	return nil
}

func styled(name, s string) string {
	return styles.GetStyle(name).Render(s)
}

func countNoun(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
