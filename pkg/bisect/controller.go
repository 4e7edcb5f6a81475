package bisect

import (
	"context"

	"github.com/arthur-debert/modbisect/pkg/errors"
	"github.com/arthur-debert/modbisect/pkg/folders"
	"github.com/arthur-debert/modbisect/pkg/logging"
	"github.com/arthur-debert/modbisect/pkg/prompt"
	"github.com/arthur-debert/modbisect/pkg/types"
	"github.com/rs/zerolog"
)

// Question is asked once per round.
const Question = "Does the problem still occur with only the remaining mods enabled?"

// Finder discovers mod folders under a root.
type Finder interface {
	Find(root string) ([]types.ModFolder, error)
}

// Toggler renames folders between their enabled and disabled forms.
type Toggler interface {
	Disable(path string) (string, error)
	Enable(path string) (string, error)
	Exists(path string) bool
}

// Reporter receives the structured records of a run.
type Reporter interface {
	Mods(mods []types.ModFolder) error
	Round(disabled, remaining []types.ModFolder) error
}

// Phase is the controller's position in the search.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseNarrowing
	PhaseResolved
	PhaseNoCandidates
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseNarrowing:
		return "narrowing"
	case PhaseResolved:
		return "resolved"
	case PhaseNoCandidates:
		return "no_candidates"
	default:
		return "unknown"
	}
}

// Outcome is how a run ended.
type Outcome int

const (
	// OutcomeNoMods means discovery found nothing under the root
	OutcomeNoMods Outcome = iota
	// OutcomeNoCandidates means every discovered mod was already disabled
	OutcomeNoCandidates
	// OutcomeResolved means one folder remains and was found on disk
	OutcomeResolved
	// OutcomeUnconfirmed means one folder remains but it vanished during the run
	OutcomeUnconfirmed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoMods:
		return "no_mods"
	case OutcomeNoCandidates:
		return "no_candidates"
	case OutcomeResolved:
		return "resolved"
	case OutcomeUnconfirmed:
		return "unconfirmed"
	default:
		return "unknown"
	}
}

// Result describes a finished (or stopped) run.
type Result struct {
	Outcome    Outcome
	Mods       []types.ModFolder
	Candidates []types.ModFolder
	Excluded   []types.ModFolder
	Rounds     int
	// Culprit is the surviving candidate as discovered.
	Culprit types.ModFolder
	// CulpritPath is the culprit's current on-disk path.
	CulpritPath string
}

// Controller runs the bisection.
type Controller struct {
	session  *Session
	finder   Finder
	toggler  Toggler
	asker    prompt.Asker
	reporter Reporter

	phase      Phase
	candidates []string
	logger     zerolog.Logger
}

// NewController wires a controller for one session.
func NewController(session *Session, finder Finder, toggler Toggler, asker prompt.Asker, reporter Reporter) *Controller {
	return &Controller{
		session:  session,
		finder:   finder,
		toggler:  toggler,
		asker:    asker,
		reporter: reporter,
		logger:   logging.GetLogger("bisect").With().Str("session", session.ID).Logger(),
	}
}

// Phase returns the controller's current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Run searches root for the culprit. The filesystem is left in whatever
// state the last round produced; restoring it is Session.Cleanup's job.
func (c *Controller) Run(ctx context.Context, root string) (Result, error) {
	done := logging.LogOperationStart(c.logger, "bisect")
	defer done()

	c.phase = PhaseInit
	result := Result{}

	mods, err := c.finder.Find(root)
	if err != nil {
		return result, err
	}
	result.Mods = mods
	if len(mods) == 0 {
		c.logger.Info().Str("root", root).Msg("No mods found")
		result.Outcome = OutcomeNoMods
		return result, nil
	}

	if err := c.reporter.Mods(mods); err != nil {
		return result, err
	}

	for _, m := range mods {
		if folders.IsDisabledName(m.Name) {
			result.Excluded = append(result.Excluded, m)
		} else {
			result.Candidates = append(result.Candidates, m)
		}
	}
	c.logger.Info().
		Int("mods", len(mods)).
		Int("candidates", len(result.Candidates)).
		Int("excluded", len(result.Excluded)).
		Msg("Partitioned mods")

	if len(result.Candidates) == 0 {
		c.phase = PhaseNoCandidates
		result.Outcome = OutcomeNoCandidates
		return result, nil
	}

	c.candidates = types.Paths(result.Candidates)
	current := append([]string{}, c.candidates...)
	c.phase = PhaseNarrowing

	for len(current) > 1 {
		if err := ctx.Err(); err != nil {
			return result, errors.Wrap(err, errors.ErrInterrupted, "bisection interrupted")
		}

		mid := len(current) / 2
		first, second := current[:mid], current[mid:]

		if err := c.activate(first); err != nil {
			return result, err
		}
		if err := c.reporter.Round(toMods(without(c.candidates, first)), toMods(first)); err != nil {
			return result, err
		}

		result.Rounds++
		answer, err := c.asker.Ask(ctx, Question)
		if err != nil {
			return result, err
		}
		c.logger.Info().Int("round", result.Rounds).Int("group", len(first)).Stringer("answer", answer).Msg("Round answered")

		switch answer {
		case prompt.Yes:
			current = first
		case prompt.No:
			if err := c.activate(second); err != nil {
				return result, err
			}
			current = second
		case prompt.Abort:
			return result, errors.New(errors.ErrAborted, "bisection aborted by user")
		default:
			return result, errors.Newf(errors.ErrPrompt, "unexpected answer %q", answer)
		}
	}

	c.phase = PhaseResolved
	result.Culprit = types.NewModFolder(current[0])
	result.CulpritPath, result.Outcome = c.resolve(current[0])
	c.logger.Info().Str("culprit", result.CulpritPath).Stringer("outcome", result.Outcome).Int("rounds", result.Rounds).Msg("Bisection finished")
	return result, nil
}

// activate leaves exactly group enabled among the original candidates.
func (c *Controller) activate(group []string) error {
	in := make(map[string]bool, len(group))
	for _, p := range group {
		in[p] = true
	}
	for _, orig := range c.candidates {
		var err error
		if in[orig] {
			err = c.ensureEnabled(orig)
		} else {
			err = c.ensureDisabled(orig)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ensureEnabled re-enables orig if this run disabled it.
func (c *Controller) ensureEnabled(orig string) error {
	disabled := folders.DisabledPath(orig)
	if !c.session.Contains(disabled) {
		return nil
	}
	if !c.toggler.Exists(disabled) {
		c.logger.Warn().Str("path", disabled).Msg("Recorded folder disappeared, dropping it")
		return c.session.Remove(disabled)
	}
	if _, err := c.toggler.Enable(disabled); err != nil {
		return err
	}
	return c.session.Remove(disabled)
}

// ensureDisabled disables orig if it is currently enabled.
func (c *Controller) ensureDisabled(orig string) error {
	if !c.toggler.Exists(orig) {
		if !c.session.Contains(folders.DisabledPath(orig)) {
			c.logger.Warn().Str("path", orig).Msg("Candidate folder disappeared, skipping")
		}
		return nil
	}
	disabled, err := c.toggler.Disable(orig)
	if err != nil {
		return err
	}
	return c.session.Add(disabled)
}

func (c *Controller) resolve(orig string) (string, Outcome) {
	if c.toggler.Exists(orig) {
		return orig, OutcomeResolved
	}
	if disabled := folders.DisabledPath(orig); c.toggler.Exists(disabled) {
		return disabled, OutcomeResolved
	}
	c.logger.Warn().Str("path", orig).Msg("Culprit folder no longer exists")
	return orig, OutcomeUnconfirmed
}

func without(all, group []string) []string {
	in := make(map[string]bool, len(group))
	for _, p := range group {
		in[p] = true
	}
	out := make([]string, 0, len(all))
	for _, p := range all {
		if !in[p] {
			out = append(out, p)
		}
	}
	return out
}

func toMods(paths []string) []types.ModFolder {
	out := make([]types.ModFolder, 0, len(paths))
	for _, p := range paths {
		out = append(out, types.NewModFolder(p))
	}
	return out
}
