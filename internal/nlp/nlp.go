// internal/nlp/nlp.go
package nlp

import (
	"regexp"
	"strings"
)

// tokenRe keeps alphabetic runs (with apostrophes), so punctuation and
// digits never become classifier features.
var tokenRe = regexp.MustCompile(`[a-zA-Z']+`)

// stopwords is the minimal closed-class word list removed before
// classification. Entity extraction never sees this filter: it works on the
// raw text, where casing and word order matter.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "and": {},
	"or": {}, "please": {}, "tell": {}, "me": {}, "what": {}, "whats": {},
	"what's": {}, "give": {}, "show": {}, "can": {}, "could": {}, "will": {},
}

// Tokenize lowercases the text and splits it into word tokens. Empty or
// whitespace-only input yields an empty slice.
func Tokenize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

// Normalize produces classifier-ready tokens: lowercased, stopwords removed,
// stemmed.
func Normalize(text string) []string {
	raw := Tokenize(text)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		out = append(out, Stem(tok))
	}
	return out
}

// Features converts tokens into the boolean bag-of-words form the intent
// model is trained on.
func Features(tokens []string) map[string]bool {
	feats := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		feats[t] = true
	}
	return feats
}
