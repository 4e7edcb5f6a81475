package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/arthur-debert/modbisect/pkg/errors"
	"github.com/arthur-debert/modbisect/pkg/logging"
	"github.com/arthur-debert/modbisect/pkg/types"
)

// TempSuffix is appended to the target path to form the temporary file.
const TempSuffix = ".tmp"

// Store saves and loads state files.
type Store struct {
	fs types.FS
}

// NewStore creates a Store working on fs.
func NewStore(fs types.FS) *Store {
	return &Store{fs: fs}
}

// Save mirrors record to path. An empty record removes the file.
func (s *Store) Save(record []string, path string) error {
	logger := logging.GetLogger("state")

	if dir := filepath.Dir(path); dir != "" {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrStateWrite, "cannot create state directory %q", dir)
		}
	}

	if len(record) == 0 {
		if err := s.Clear(path); err != nil {
			return err
		}
		logger.Debug().Str("path", path).Msg("Record empty, state file removed")
		return nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, errors.ErrStateWrite, "cannot encode state record")
	}

	tmp := path + TempSuffix
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrStateWrite, "cannot write %q", tmp)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrStateWrite, "cannot replace %q", path)
	}

	logger.Debug().Str("path", path).Int("entries", len(record)).Msg("State saved")
	return nil
}

// Load reads the record stored at path. A missing file is an empty record.
// Entries that are not strings are dropped; a file that is not a JSON array
// is reported as corrupt.
func (s *Store) Load(path string) ([]string, error) {
	logger := logging.GetLogger("state")

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrStateRead, "cannot read %q", path)
	}

	var raw []interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStateCorrupt, "state file %q is not a JSON list", path).
			WithDetail("path", path)
	}

	out := make([]string, 0, len(raw))
	for i, item := range raw {
		str, ok := item.(string)
		if !ok {
			logger.Debug().Str("path", path).Int("index", i).Interface("entry", item).Msg("Dropping malformed state entry")
			continue
		}
		out = append(out, str)
	}
	return out, nil
}

// Clear removes the state file and any leftover temporary file.
func (s *Store) Clear(path string) error {
	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrStateWrite, "cannot remove %q", path)
	}
	if err := s.fs.Remove(path + TempSuffix); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrStateWrite, "cannot remove %q", path+TempSuffix)
	}
	return nil
}

// Exists reports whether a state file is present at path.
func (s *Store) Exists(path string) bool {
	_, err := s.fs.Stat(path)
	return err == nil
}
