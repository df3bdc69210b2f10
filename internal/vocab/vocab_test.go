package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchbot/internal/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vocab.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "你\t10\n好\t8\n\n再\n你\t3\n见\n")
	v, err := Load(path, 0)
	require.NoError(t, err)

	assert.Equal(t, 4, v.Len())
	id, ok := v.ID("再")
	require.True(t, ok)
	assert.Equal(t, 2, id)
	w, ok := v.Word(3)
	require.True(t, ok)
	assert.Equal(t, "见", w)
	_, ok = v.Word(4)
	assert.False(t, ok)
}

func TestLoad_MaxSize(t *testing.T) {
	path := writeFile(t, "a\nb\nc\nd\n")
	v, err := Load(path, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Len())
	assert.True(t, v.Contains("b"))
	assert.False(t, v.Contains("c"))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestFilter(t *testing.T) {
	v := New([]string{"你", "好"})
	assert.Equal(t, []string{"你", "好"}, v.Filter([]string{"天", "你", "气", "好"}))
	assert.Empty(t, v.Filter([]string{"天", "气"}))
}
