package grammar

import (
	"eventual/internal/core/domain/expression"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reWord = regexp.MustCompile(
		strings.Join(
			[]string{
				`'\d{2}\b`,
				`\d{1,2}:\d{2}`,
				`\d+(?:st|nd|rd|th|º|ª)?`,
				`[a-z]+(?:'[a-z]+)?`,
				`[,/&\-\n]`,
			},
			"|",
		),
	)
	reShortYear = regexp.MustCompile(`^'\d{2}$`)
	reClock     = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	reDigits    = regexp.MustCompile(`^\d+`)
	cleaner     = strings.NewReplacer(".", "", "’", "'", "\r\n", "\n", "\r", "\n", "\t", " ")
)

type token struct {
	kind    kind
	text    string
	number  int
	digits  int
	month   time.Month
	weekday int
	// afterFiller is set when a filler word was dropped right before the token.
	afterFiller bool
}

// normalize lower-cases the text and strips accents, so "Miércoles" and "miercoles" read the same.
func normalize(text string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		return "", fmt.Errorf("%s, %w", err.Error(), expression.ErrMalformedInput)
	}
	return cleaner.Replace(strings.ToLower(folded)), nil
}

func split(text string) ([]string, error) {
	words := []string{}
	last := 0
	for _, loc := range reWord.FindAllStringIndex(text, -1) {
		if gap := strings.TrimSpace(text[last:loc[0]]); gap != "" {
			return nil, fmt.Errorf("unexpected %q, %w", gap, expression.ErrMalformedInput)
		}
		words = append(words, text[loc[0]:loc[1]])
		last = loc[1]
	}
	if gap := strings.TrimSpace(text[last:]); gap != "" {
		return nil, fmt.Errorf("unexpected %q, %w", gap, expression.ErrMalformedInput)
	}
	return words, nil
}

// tokenize classifies words with the lexicon and drops fillers.
func tokenize(words []string, lex *lexicon) ([]token, error) {
	tokens := []token{}
	afterFiller := false
	for i := 0; i < len(words); {
		tok, n, err := classify(words[i:], lex)
		if err != nil {
			return nil, err
		}
		i += n
		if tok.kind == kindFiller {
			afterFiller = true
			continue
		}
		tok.afterFiller = afterFiller
		afterFiller = false
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func classify(words []string, lex *lexicon) (token, int, error) {
	word := words[0]
	switch {
	case reShortYear.MatchString(word):
		return token{kind: kindShortYear, text: word}, 1, nil
	case reClock.MatchString(word):
		return token{kind: kindClock, text: word}, 1, nil
	case reDigits.MatchString(word):
		digits := reDigits.FindString(word)
		number, err := strconv.Atoi(digits)
		if err != nil {
			return token{}, 0, fmt.Errorf("number %q, %w", word, expression.ErrMalformedInput)
		}
		return token{kind: kindNumber, text: digits, number: number, digits: len(digits)}, 1, nil
	}
	e, n, ok := lex.match(words)
	if !ok {
		return token{}, 0, fmt.Errorf("unknown word %q, %w", word, expression.ErrMalformedInput)
	}
	return token{
		kind:    e.kind,
		text:    strings.Join(words[:n], " "),
		month:   e.month,
		weekday: e.weekday,
	}, n, nil
}
