// Package morph extracts query keywords via morphological analysis.
package morph

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Extractor tokenizes Japanese text and keeps surface forms whose part of
// speech is in the allow-list and whose rune length meets the minimum.
type Extractor struct {
	tokenizer *tokenizer.Tokenizer
	targetPOS map[string]struct{}
	minLength int
}

// New creates an extractor with the embedded IPA dictionary.
// targetPOS holds top-level part-of-speech names (名詞, 形容詞, ...).
func New(targetPOS []string, minLength int) (*Extractor, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("build tokenizer: %w", err)
	}

	pos := make(map[string]struct{}, len(targetPOS))
	for _, p := range targetPOS {
		pos[p] = struct{}{}
	}

	return &Extractor{tokenizer: t, targetPOS: pos, minLength: minLength}, nil
}

// Extract implements domain.KeywordExtractor. The result is a sorted set:
// each keyword once, in lexical order, so downstream filtering is
// deterministic regardless of tokenizer internals.
func (e *Extractor) Extract(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]struct{})
	for _, token := range e.tokenizer.Tokenize(text) {
		surface := token.Surface
		if surface == "" || utf8.RuneCountInString(surface) < e.minLength {
			continue
		}
		pos := token.POS()
		if len(pos) == 0 {
			continue
		}
		if _, ok := e.targetPOS[pos[0]]; !ok {
			continue
		}
		seen[surface] = struct{}{}
	}

	keywords := make([]string, 0, len(seen))
	for kw := range seen {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}
