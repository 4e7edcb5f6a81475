package types_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modbisect/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModFolder(t *testing.T) {
	path := filepath.Join(string(filepath.Separator), "games", "Mods", "Cool Skin")
	m := types.NewModFolder(path)

	assert.Equal(t, "Cool Skin", m.Name)
	assert.Equal(t, path, m.Path)
}

func TestModFolderJSONShape(t *testing.T) {
	data, err := json.Marshal(types.ModFolder{Name: "A", Path: "/m/A"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"A","path":"/m/A"}`, string(data))
}

func TestPaths(t *testing.T) {
	mods := []types.ModFolder{{Name: "A", Path: "/m/A"}, {Name: "B", Path: "/m/B"}}
	assert.Equal(t, []string{"/m/A", "/m/B"}, types.Paths(mods))
	assert.Empty(t, types.Paths(nil))
}
