package nlp

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestChunkText(t *testing.T) {
	t.Run("short text is one chunk", func(t *testing.T) {
		assert.Equal(t, []string{"python developer"}, ChunkText("  python developer \n\n", 100))
	})

	t.Run("paragraphs are packed", func(t *testing.T) {
		chunks := ChunkText("aaaa\n\nbbbb\n\ncccc", 10)
		assert.Equal(t, []string{"aaaa\n\nbbbb", "cccc"}, chunks)
	})

	t.Run("long paragraph splits on sentences", func(t *testing.T) {
		chunks := ChunkText("knows node.js well. writes go daily! likes sql?", 20)
		assert.Equal(t, []string{"knows node.js well.", "writes go daily!", "likes sql?"}, chunks)
	})

	t.Run("no words lost", func(t *testing.T) {
		text := strings.Repeat("golang kubernetes terraform. ", 200)
		chunks := ChunkText(text, 64)
		for _, c := range chunks {
			assert.LessOrEqual(t, utf8.RuneCountInString(c), 64)
		}
		assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(chunks, " ")))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, ChunkText("\n\n  \n\n", 10))
	})
}

func TestSplitIntoSentences(t *testing.T) {
	assert.Equal(t,
		[]string{"Use asp.net.", "Then ship"},
		splitIntoSentences("Use asp.net. Then ship"),
	)
}
