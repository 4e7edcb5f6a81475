package recovery

import (
	"github.com/arthur-debert/modbisect/pkg/errors"
	"github.com/arthur-debert/modbisect/pkg/folders"
	"github.com/arthur-debert/modbisect/pkg/logging"
	"github.com/arthur-debert/modbisect/pkg/state"
	"github.com/arthur-debert/modbisect/pkg/types"
)

// Result summarises one recovery pass.
type Result struct {
	Restored int      `json:"restored"`
	Skipped  int      `json:"skipped"`
	Failed   []string `json:"failed,omitempty"`
}

// Merge adds the counts of other into r.
func (r *Result) Merge(other Result) {
	r.Restored += other.Restored
	r.Skipped += other.Skipped
	r.Failed = append(r.Failed, other.Failed...)
}

// Recoverer re-enables recorded folders.
type Recoverer struct {
	folders *folders.Manager
	store   *state.Store
}

// New creates a Recoverer working on fs.
func New(fs types.FS) *Recoverer {
	return &Recoverer{
		folders: folders.NewManager(fs),
		store:   state.NewStore(fs),
	}
}

// Recover restores every entry recorded in the state file at path and then
// removes the file. A missing file restores nothing. A corrupt file is left
// in place and reported as an error.
func (r *Recoverer) Recover(path string) (Result, error) {
	logger := logging.GetLogger("recovery")
	done := logging.LogOperationStart(logger, "recover")
	defer done()

	record, err := r.store.Load(path)
	if err != nil {
		return Result{}, err
	}

	result := r.Restore(record)

	if err := r.store.Clear(path); err != nil {
		return result, err
	}

	logger.Info().
		Str("path", path).
		Int("restored", result.Restored).
		Int("skipped", result.Skipped).
		Int("failed", len(result.Failed)).
		Msg("Recovery finished")

	if len(result.Failed) > 0 {
		return result, errors.Newf(errors.ErrRenameFailed, "%d folder(s) could not be restored", len(result.Failed)).
			WithDetail("failed", result.Failed)
	}
	return result, nil
}

// Restore re-enables each disabled-form path in paths. Entries that no
// longer exist or do not carry the disabled prefix are skipped; a failing
// entry does not stop the others.
func (r *Recoverer) Restore(paths []string) Result {
	logger := logging.GetLogger("recovery")
	result := Result{}

	for _, path := range paths {
		if !folders.IsDisabledPath(path) {
			logger.Warn().Str("path", path).Msg("Skipping entry without disabled prefix")
			result.Skipped++
			continue
		}
		if !r.folders.Exists(path) {
			logger.Debug().Str("path", path).Msg("Skipping entry that no longer exists")
			result.Skipped++
			continue
		}

		restored, err := r.folders.Enable(path)
		if err != nil {
			logger.Error().Err(err).Str("path", path).Msg("Failed to restore folder")
			result.Failed = append(result.Failed, path)
			continue
		}

		logger.Info().Str("path", restored).Msg("Restored folder")
		result.Restored++
	}

	return result
}
