// Package textutil provides tokenisation and normalisation shared by the
// vector-space and keyphrase extractors.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MinTokenLength is the shortest token, in runes, kept by Tokenize.
const MinTokenLength = 2

// Normalize applies NFKC normalisation and Unicode case folding.
func Normalize(text string) string {
	return cases.Fold().String(norm.NFKC.String(text))
}

// IsWordRune reports whether r can appear inside a word token.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// Tokenize normalises text and splits it into word tokens of at least
// MinTokenLength runes. Anything that is not a word rune separates tokens.
func Tokenize(text string) []string {
	text = Normalize(text)
	var tokens []string
	start := -1
	for i, r := range text {
		if IsWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = appendToken(tokens, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = appendToken(tokens, text[start:])
	}
	return tokens
}

func appendToken(tokens []string, tok string) []string {
	if utf8.RuneCountInString(tok) < MinTokenLength {
		return tokens
	}
	return append(tokens, tok)
}

// RemoveStopwords returns tokens with English stopwords dropped.
func RemoveStopwords(tokens []string) []string {
	out := tokens[:0:0]
	for _, t := range tokens {
		if !IsStopword(t) {
			out = append(out, t)
		}
	}
	return out
}

// IsStopword reports whether the lower-cased word is an English stopword.
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

// Ngrams returns all contiguous n-grams for n in [minN, maxN], joined by a
// single space. Unigrams come first, then bigrams, and so on.
func Ngrams(tokens []string, minN, maxN int) []string {
	if minN < 1 {
		minN = 1
	}
	var out []string
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			if n == 1 {
				out = append(out, tokens[i])
				continue
			}
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}
