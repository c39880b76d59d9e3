package nlp

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultChunkSize is the chunk size used when none is configured.
const DefaultChunkSize = 4000

// ChunkText splits text into pieces of at most maxChunkSize runes so that long
// documents can be tagged piece by piece. Paragraphs are kept together when
// they fit; longer paragraphs are split on sentence boundaries, and sentences
// that are still too long on whitespace. Chunks do not overlap, so every word
// of the input lands in exactly one chunk.
func ChunkText(text string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultChunkSize
	}

	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	add := func(piece, sep string) {
		n := utf8.RuneCountInString(piece)
		if currentLen > 0 && currentLen+utf8.RuneCountInString(sep)+n > maxChunkSize {
			flush()
		}
		if currentLen > 0 {
			current.WriteString(sep)
			currentLen += utf8.RuneCountInString(sep)
		}
		current.WriteString(piece)
		currentLen += n
	}

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= maxChunkSize {
			add(para, "\n\n")
			continue
		}

		// Paragraph too long: fall back to sentences, then words.
		for _, sentence := range splitIntoSentences(para) {
			if utf8.RuneCountInString(sentence) <= maxChunkSize {
				add(sentence, " ")
				continue
			}
			for _, word := range strings.Fields(sentence) {
				add(word, " ")
			}
		}
	}

	flush()
	return chunks
}

// splitIntoSentences splits after '.', '!' or '?' when followed by
// whitespace. Terminators stay attached so "node.js" is never broken.
func splitIntoSentences(text string) []string {
	var result []string
	start := 0
	runes := []rune(text)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			result = append(result, s)
		}
		start = i + 1
	}
	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			result = append(result, s)
		}
	}
	return result
}
