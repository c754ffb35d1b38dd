package seo

import (
	"strings"
	"unicode"
)

// MaxKeywords caps the generated keyword set
const MaxKeywords = 30

// stop words dropped from generated keywords; the directory serves Arabic
// and English audiences so both lists apply.
var stopWords = map[string]struct{}{
	// English
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "this": {},
	"that": {}, "are": {}, "was": {}, "all": {}, "can": {}, "has": {},
	"have": {}, "not": {}, "you": {}, "your": {}, "our": {}, "about": {},
	"best": {}, "top": {},
	// Arabic
	"في": {}, "من": {}, "على": {}, "عن": {}, "مع": {}, "هذا": {},
	"هذه": {}, "ذلك": {}, "التي": {}, "الذي": {}, "أو": {}, "ثم": {},
	"كل": {}, "بعض": {}, "عند": {}, "إلى": {}, "حول": {},
}

// GenerateKeywords tokenizes the effective title, any explicit keyword list
// and the path segments, drops stop-words and short tokens, dedupes
// preserving first-seen order and caps the result at MaxKeywords.
func GenerateKeywords(title string, explicit []string, path string) []string {
	var tokens []string
	tokens = append(tokens, tokenize(title)...)
	for _, kw := range explicit {
		tokens = append(tokens, tokenize(kw)...)
	}
	for _, seg := range strings.Split(path, "/") {
		tokens = append(tokens, tokenize(strings.ReplaceAll(seg, "-", " "))...)
	}

	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, MaxKeywords)
	for _, tok := range tokens {
		if !keepToken(tok) {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
		if len(out) == MaxKeywords {
			break
		}
	}
	return out
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// keepToken drops stop-words and short tokens. Arabic words pack more meaning
// per rune, so the minimum length is two runes there and three elsewhere.
func keepToken(tok string) bool {
	if _, stop := stopWords[tok]; stop {
		return false
	}
	runes := []rune(tok)
	min := 3
	if len(runes) > 0 && unicode.Is(unicode.Arabic, runes[0]) {
		min = 2
	}
	return len(runes) >= min
}
