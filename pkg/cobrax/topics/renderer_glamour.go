package topics

import (
	"os"

	"github.com/arthur-debert/modbisect/pkg/ui"
	"github.com/charmbracelet/glamour"
)

// plainStyle is glamour's colourless style, used when stdout is not a
// styled terminal.
const plainStyle = "notty"

// GlamourRenderer renders markdown topics with glamour, following the same
// output format rules as the rest of the CLI.
type GlamourRenderer struct {
	Format ui.Format
	Width  int // 0 keeps glamour's default wrapping
}

// NewGlamourRenderer returns a renderer for the given output format.
// FormatAuto is resolved against stdout at render time.
func NewGlamourRenderer(format ui.Format) *GlamourRenderer {
	return &GlamourRenderer{Format: format}
}

func (r *GlamourRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}

	options := []glamour.TermRendererOption{r.styleOption()}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

func (r *GlamourRenderer) styleOption() glamour.TermRendererOption {
	if ui.Resolve(r.Format, os.Stdout) == ui.FormatStyled {
		return glamour.WithAutoStyle()
	}
	return glamour.WithStylePath(plainStyle)
}
