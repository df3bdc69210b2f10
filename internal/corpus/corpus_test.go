package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchbot/internal/domain"
	"searchbot/internal/tokenizer"
	"searchbot/internal/vocab"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCorpus(t, "你好！\t你好呀\n\n再见\t下次见\r\n")
	v := vocab.New([]string{"你", "好", "再", "见"})

	c, err := Load(path, tokenizer.New(), v)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	assert.Len(t, c.Responses, len(c.Contexts))
	assert.Equal(t, []string{"你", "好"}, c.Contexts[0])
	assert.Equal(t, []string{"再", "见"}, c.Contexts[1])
	assert.Equal(t, "下次见", c.Responses[1])
}

func TestLoad_VocabularyFilter(t *testing.T) {
	path := writeCorpus(t, "今天天气好\t是的\n")
	v := vocab.New([]string{"天", "好"})

	c, err := Load(path, tokenizer.New(), v)
	require.NoError(t, err)
	assert.Equal(t, []string{"天", "天", "好"}, c.Contexts[0])
}

func TestLoad_Malformed(t *testing.T) {
	for name, content := range map[string]string{
		"no tab":         "你好 你好呀\n",
		"empty response": "你好\t  \n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeCorpus(t, content), tokenizer.New(), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrCorpusLoad)
			assert.Contains(t, err.Error(), ":1:")
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"), tokenizer.New(), nil)
	assert.ErrorIs(t, err, domain.ErrCorpusLoad)
}

func TestNew_LengthMismatch(t *testing.T) {
	_, err := New([][]string{{"a"}}, nil)
	assert.ErrorIs(t, err, domain.ErrCorpusLoad)
}
