package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_ChineseRunes(t *testing.T) {
	tok := New()
	assert.Equal(t, []string{"你", "好"}, tok.Tokenize("你好", true))
}

func TestTokenize_MixedScript(t *testing.T) {
	tok := New()
	got := tok.Tokenize("Hello,世界 Go1.24!", true)
	assert.Equal(t, []string{"hello", "世", "界", "go1", "24"}, got)
}

func TestTokenize_KeepPunctuation(t *testing.T) {
	tok := New()
	got := tok.Tokenize("你好！", false)
	assert.Equal(t, []string{"你", "好", "！"}, got)
}

func TestTokenize_DropPunctuation(t *testing.T) {
	tok := New()
	got := tok.Tokenize("你好！", true)
	assert.Equal(t, []string{"你", "好"}, got)
}

func TestTokenize_Stopwords(t *testing.T) {
	tok := New("the", "的")
	got := tok.Tokenize("The cat 的 hat", true)
	assert.Equal(t, []string{"cat", "hat"}, got)
}

func TestTokenize_Empty(t *testing.T) {
	tok := New()
	assert.Empty(t, tok.Tokenize("   ", true))
	assert.Empty(t, tok.Tokenize("", false))
}
