package bisect

import (
	"github.com/arthur-debert/modbisect/pkg/folders"
	"github.com/arthur-debert/modbisect/pkg/logging"
	"github.com/arthur-debert/modbisect/pkg/recovery"
	"github.com/arthur-debert/modbisect/pkg/state"
	"github.com/arthur-debert/modbisect/pkg/types"
	"github.com/google/uuid"
)

// Session holds the disabled-by-program record of one run.
type Session struct {
	ID string

	statePath string
	store     *state.Store
	folders   *folders.Manager
	record    []string
}

// NewSession creates a session persisting to statePath.
func NewSession(fs types.FS, statePath string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		statePath: statePath,
		store:     state.NewStore(fs),
		folders:   folders.NewManager(fs),
		record:    []string{},
	}
}

// StatePath returns the state file this session writes.
func (s *Session) StatePath() string {
	return s.statePath
}

// Record returns a copy of the disabled-form paths the run currently owns.
func (s *Session) Record() []string {
	return append([]string{}, s.record...)
}

// Contains reports whether path is in the record.
func (s *Session) Contains(path string) bool {
	return indexOf(s.record, path) >= 0
}

// Add records a disabled-form path and persists the record. The entry stays
// in memory even when saving fails so Cleanup still restores it.
func (s *Session) Add(path string) error {
	if s.Contains(path) {
		return nil
	}
	s.record = append(s.record, path)
	return s.save()
}

// Remove drops path from the record and persists the record.
func (s *Session) Remove(path string) error {
	i := indexOf(s.record, path)
	if i < 0 {
		return nil
	}
	s.record = append(s.record[:i], s.record[i+1:]...)
	return s.save()
}

func (s *Session) save() error {
	return s.store.Save(s.record, s.statePath)
}

// Cleanup restores every folder the run disabled. The state file is the
// primary source; entries that only made it into memory (because a save
// failed) are restored afterwards. The record is empty on return.
func (s *Session) Cleanup(r *recovery.Recoverer) (recovery.Result, error) {
	logger := logging.GetLogger("bisect").With().Str("session", s.ID).Logger()

	persisted, loadErr := s.store.Load(s.statePath)
	if loadErr != nil {
		persisted = nil
	}

	result, err := r.Recover(s.statePath)
	if err != nil {
		logger.Error().Err(err).Str("state", s.statePath).Msg("Recovery from state file incomplete")
	}

	// entries the state file held were already attempted by Recover
	var leftovers []string
	for _, path := range s.record {
		if indexOf(persisted, path) >= 0 {
			continue
		}
		if s.folders.Exists(path) {
			leftovers = append(leftovers, path)
		}
	}
	if len(leftovers) > 0 {
		logger.Warn().Strs("paths", leftovers).Msg("Restoring folders missing from the state file")
		result.Merge(r.Restore(leftovers))
	}
	s.record = []string{}

	logger.Info().Int("restored", result.Restored).Msg("Session cleaned up")
	return result, err
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
