// Package report writes the run's machine-readable records and its
// human-facing messages to stdout.
//
// Every structured record is one JSON document on its own line. Messages are
// plain lines, styled with lipgloss when the output is a color terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arthur-debert/modbisect/pkg/errors"
	"github.com/arthur-debert/modbisect/pkg/types"
	"github.com/arthur-debert/modbisect/pkg/ui"
)

// Reporter writes records and messages to a single stream.
type Reporter struct {
	out    io.Writer
	styles ui.Styles
	enc    *json.Encoder
}

// New creates a Reporter. format must already be resolved (not FormatAuto).
func New(out io.Writer, format ui.Format) *Reporter {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	return &Reporter{
		out:    out,
		styles: ui.NewStyles(format),
		enc:    enc,
	}
}

// Mods writes the full list of discovered mods as one JSON array.
func (r *Reporter) Mods(mods []types.ModFolder) error {
	return r.encode(nonNil(mods))
}

// Round writes the disabled and remaining groups of one bisection round.
func (r *Reporter) Round(disabled, remaining []types.ModFolder) error {
	if err := r.encode(map[string][]types.ModFolder{"disabled": nonNil(disabled)}); err != nil {
		return err
	}
	return r.encode(map[string][]types.ModFolder{"remaining": nonNil(remaining)})
}

// Culprit writes the resolved folder path as a bare line.
func (r *Reporter) Culprit(path string) error {
	return r.line(path)
}

// Info writes a neutral message.
func (r *Reporter) Info(format string, args ...interface{}) error {
	return r.line(r.styles.Muted.Render(fmt.Sprintf(format, args...)))
}

// Success writes a message for a completed action.
func (r *Reporter) Success(format string, args ...interface{}) error {
	return r.line(r.styles.Success.Render(fmt.Sprintf(format, args...)))
}

// Warn writes a message for a non-fatal problem.
func (r *Reporter) Warn(format string, args ...interface{}) error {
	return r.line(r.styles.Warning.Render(fmt.Sprintf(format, args...)))
}

func (r *Reporter) encode(v interface{}) error {
	if err := r.enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot write report")
	}
	return nil
}

func (r *Reporter) line(s string) error {
	if _, err := fmt.Fprintln(r.out, s); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot write report")
	}
	return nil
}

func nonNil(mods []types.ModFolder) []types.ModFolder {
	if mods == nil {
		return []types.ModFolder{}
	}
	return mods
}
