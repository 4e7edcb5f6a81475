package modbisect

import (
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/modbisect/pkg/ui"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	// Only apply formatting if output is a terminal
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// formatUpper returns the string in uppercase
func formatUpper(s string) string {
	return strings.ToUpper(s)
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":  formatBold,
		"upper": formatUpper,
	})
}

// formatFor resolves f for w. Writers that are not files get plain output.
func formatFor(w io.Writer, f ui.Format) ui.Format {
	file, ok := w.(*os.File)
	if !ok {
		if f == ui.FormatAuto {
			return ui.FormatPlain
		}
		return f
	}
	return ui.Resolve(f, file)
}

// isInteractive reports whether r is a terminal.
func isInteractive(r io.Reader) bool {
	file, ok := r.(*os.File)
	return ok && ui.IsInteractive(file)
}
