package yake

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/kgtool/internal/analysis/textutil"
)

// minTermLength is the shortest normalised term that can carry meaning.
const minTermLength = 3

type wordTag byte

const (
	tagPlain   wordTag = 'p'
	tagDigit   wordTag = 'd'
	tagUnusual wordTag = 'u'
	tagAcronym wordTag = 'a'
	tagProper  wordTag = 'n'
)

type token struct {
	text  string
	punct bool
}

// splitSentences breaks text into sentences of word and punctuation tokens.
// Line breaks and terminal punctuation followed by space end a sentence.
func splitSentences(text string) [][]token {
	var sentences [][]token
	for _, line := range strings.Split(text, "\n") {
		var current []token
		toks := tokenize(line)
		for i, tok := range toks {
			current = append(current, tok)
			if tok.punct && endsSentence(tok.text) && (i == len(toks)-1 || !toks[i+1].punct) {
				sentences = appendSentence(sentences, current)
				current = nil
			}
		}
		sentences = appendSentence(sentences, current)
	}
	return sentences
}

func appendSentence(sentences [][]token, s []token) [][]token {
	for _, tok := range s {
		if !tok.punct {
			return append(sentences, s)
		}
	}
	return sentences
}

func endsSentence(p string) bool {
	return strings.ContainsAny(p, ".!?")
}

// tokenize splits a line into words and punctuation runs. Hyphens,
// apostrophes and dots between word runes stay inside the word.
func tokenize(line string) []token {
	var toks []token
	runes := []rune(line)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case textutil.IsWordRune(r):
			start := i
			for i < len(runes) {
				if textutil.IsWordRune(runes[i]) {
					i++
					continue
				}
				if isJoiner(runes[i]) && i+1 < len(runes) && textutil.IsWordRune(runes[i+1]) {
					i++
					continue
				}
				break
			}
			toks = append(toks, token{text: string(runes[start:i])})
		default:
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) && !textutil.IsWordRune(runes[i]) {
				i++
			}
			toks = append(toks, token{text: string(runes[start:i]), punct: true})
		}
	}
	return toks
}

func isJoiner(r rune) bool {
	return r == '-' || r == '\'' || r == '.' || r == '’'
}

// tagWord classifies a word by its shape. idx is the word's position in
// its sentence; capitalised words are proper nouns only after the first.
func tagWord(word string, idx int) wordTag {
	if isNumber(word) {
		return tagDigit
	}

	var letters, digits, special, upper int
	for _, r := range word {
		switch {
		case unicode.IsLetter(r):
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		case unicode.IsDigit(r):
			digits++
		default:
			special++
		}
	}
	if special > 1 || (letters > 0 && digits > 0) {
		return tagUnusual
	}
	if letters > 1 && upper == letters {
		return tagAcronym
	}
	first, _ := utf8.DecodeRuneInString(word)
	if idx > 0 && unicode.IsUpper(first) {
		return tagProper
	}
	return tagPlain
}

// isNumber reports whether word is made of digits with optional
// thousands or decimal separators.
func isNumber(word string) bool {
	digits := 0
	for _, r := range word {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == ',' || r == '.':
		default:
			return false
		}
	}
	return digits > 0
}

// isStopword reports whether a word is too common or too short to be a
// keyphrase boundary. lower is the lower-cased word, key its normalised term.
func isStopword(lower, key string) bool {
	return textutil.IsStopword(lower) || utf8.RuneCountInString(key) < minTermLength
}
