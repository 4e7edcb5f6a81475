// Package discovery finds mod folders under a root directory.
//
// A directory is a mod folder when it directly contains at least one file
// with the marker extension. Discovery treats a mod folder as a leaf and
// does not look inside it, so nested mods are never counted twice.
package discovery

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modbisect/pkg/logging"
	"github.com/arthur-debert/modbisect/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultMarkerExtension is the extension that marks a mod folder.
const DefaultMarkerExtension = ".ini"

// Scanner walks a directory tree looking for mod folders.
type Scanner struct {
	fs        types.FS
	markerExt string
	logger    zerolog.Logger
}

// NewScanner creates a Scanner. An empty markerExt selects
// DefaultMarkerExtension; a missing leading dot is added.
func NewScanner(fs types.FS, markerExt string) *Scanner {
	return &Scanner{
		fs:        fs,
		markerExt: normalizeExt(markerExt),
		logger:    logging.GetLogger("discovery"),
	}
}

func normalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return DefaultMarkerExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.ToLower(ext)
}

// MarkerExtension returns the extension this scanner matches.
func (s *Scanner) MarkerExtension() string {
	return s.markerExt
}

// Find returns the mod folders under root in pre-order. A missing root, a
// root that is not a directory, or an empty root all yield an empty list.
func (s *Scanner) Find(root string) ([]types.ModFolder, error) {
	mods := []types.ModFolder{}
	if root == "" {
		return mods, nil
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		s.logger.Warn().Err(err).Str("root", root).Msg("Cannot resolve mods root")
		return mods, nil
	}
	root = filepath.Clean(abs)

	info, err := s.fs.Stat(root)
	if err != nil || !info.IsDir() {
		s.logger.Info().Str("root", root).Msg("Mods root is missing or not a directory")
		return mods, nil
	}

	s.walk(root, &mods)

	s.logger.Info().
		Str("root", root).
		Str("marker", s.markerExt).
		Int("found", len(mods)).
		Msg("Discovery completed")
	return mods, nil
}

func (s *Scanner) walk(dir string, mods *[]types.ModFolder) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		// unreadable directories are skipped, not fatal
		s.logger.Warn().Err(err).Str("dir", dir).Msg("Skipping unreadable directory")
		return
	}

	var subdirs []string
	qualifies := false
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, filepath.Join(dir, entry.Name()))
			continue
		}
		if s.isMarker(entry.Name()) {
			qualifies = true
		}
	}

	if qualifies {
		*mods = append(*mods, types.NewModFolder(dir))
		return
	}

	for _, sub := range subdirs {
		s.walk(sub, mods)
	}
}

func (s *Scanner) isMarker(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == s.markerExt
}
