package folders

import (
	"os"

	"github.com/arthur-debert/modbisect/pkg/errors"
	"github.com/arthur-debert/modbisect/pkg/logging"
	"github.com/arthur-debert/modbisect/pkg/types"
)

// Manager renames folders between their enabled and disabled forms.
type Manager struct {
	fs types.FS
}

// NewManager creates a Manager working on fs.
func NewManager(fs types.FS) *Manager {
	return &Manager{fs: fs}
}

// Disable renames path to its disabled form and returns the new path.
// An already disabled path is returned unchanged.
func (m *Manager) Disable(path string) (string, error) {
	if IsDisabledPath(path) {
		return path, nil
	}
	target := DisabledPath(path)
	if err := m.rename(path, target); err != nil {
		return "", err
	}
	return target, nil
}

// Enable renames a disabled path back to its original name and returns it.
// A path without the prefix is returned unchanged.
func (m *Manager) Enable(path string) (string, error) {
	if !IsDisabledPath(path) {
		return path, nil
	}
	target := EnabledPath(path)
	if err := m.rename(path, target); err != nil {
		return "", err
	}
	return target, nil
}

// Exists reports whether path is present on disk.
func (m *Manager) Exists(path string) bool {
	_, err := m.fs.Lstat(path)
	return err == nil
}

func (m *Manager) rename(from, to string) error {
	logger := logging.GetLogger("folders")

	if _, err := m.fs.Lstat(from); err != nil {
		code := errors.ErrRenameFailed
		if os.IsNotExist(err) {
			code = errors.ErrFolderNotFound
		}
		return errors.Wrapf(err, code, "cannot rename %q", from).
			WithDetail("from", from).
			WithDetail("to", to)
	}

	// rename(2) silently replaces an empty directory, so collisions are
	// checked up front.
	if _, err := m.fs.Lstat(to); err == nil {
		return errors.Newf(errors.ErrNameCollision, "cannot rename %q: %q already exists", from, to).
			WithDetail("from", from).
			WithDetail("to", to)
	}

	if err := m.fs.Rename(from, to); err != nil {
		return errors.Wrapf(err, errors.ErrRenameFailed, "cannot rename %q to %q", from, to).
			WithDetail("from", from).
			WithDetail("to", to)
	}

	logger.Debug().Str("from", from).Str("to", to).Msg("Renamed folder")
	return nil
}

// IsRenameFailure reports whether err came from a failed folder rename.
func IsRenameFailure(err error) bool {
	return errors.IsErrorCode(err, errors.ErrRenameFailed) ||
		errors.IsErrorCode(err, errors.ErrNameCollision) ||
		errors.IsErrorCode(err, errors.ErrFolderNotFound)
}
