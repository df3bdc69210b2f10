package wordvec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchbot/internal/domain"
)

func writeVectors(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vectors.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_WithHeader(t *testing.T) {
	e, err := Load(writeVectors(t, "2 3\n你 1 0 0\n好 0 1 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, e.Dimension())
	assert.Equal(t, "wordvec", e.Name())

	v, err := e.Encode([]string{"你", "好", "天"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5, 0}, v)
}

func TestLoad_WithoutHeader(t *testing.T) {
	e, err := Load(writeVectors(t, "a 1 2\nb 3 4\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, e.Dimension())
}

func TestLoad_RaggedRow(t *testing.T) {
	_, err := Load(writeVectors(t, "a 1 2\nb 3\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCorpusLoad)
}

func TestLoad_BadNumber(t *testing.T) {
	_, err := Load(writeVectors(t, "a 1 x\n"))
	assert.ErrorIs(t, err, domain.ErrCorpusLoad)
}

func TestEncode_Unknown(t *testing.T) {
	e, err := New(map[string][]float64{"a": {1, 1}})
	require.NoError(t, err)
	v, err := e.Encode([]string{"z"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, v)
}

func TestNew_Mismatch(t *testing.T) {
	_, err := New(map[string][]float64{"a": {1, 1}, "b": {1}})
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}
