package grammar

import (
	"strings"
	"time"
)

type kind int

const (
	kindEnd kind = iota
	kindNumber
	kindShortYear
	kindClock
	kindMonth
	kindWeekday
	kindWeekend
	kindWorkweek
	kindSep
	kindRange
	kindTimeIntro
	kindMeridiem
	kindTimeSuffix
	kindFiller
)

type entry struct {
	kind    kind
	month   time.Month
	weekday int
}

// lexicon maps words and multi-word phrases of one language to symbols.
type lexicon struct {
	entries  map[string]entry
	maxWords int
}

func newLexicon() *lexicon {
	l := &lexicon{entries: make(map[string]entry), maxWords: 1}
	// Punctuation is shared by every language.
	l.add(kindSep, ",", "/", "&", "\n")
	l.add(kindRange, "-")
	l.add(kindMeridiem, "am", "pm")
	return l
}

func (l *lexicon) add(k kind, phrases ...string) *lexicon {
	for _, phrase := range phrases {
		l.put(phrase, entry{kind: k})
	}
	return l
}

func (l *lexicon) month(m time.Month, names ...string) *lexicon {
	for _, name := range names {
		l.put(name, entry{kind: kindMonth, month: m})
	}
	return l
}

func (l *lexicon) weekday(d int, names ...string) *lexicon {
	for _, name := range names {
		l.put(name, entry{kind: kindWeekday, weekday: d})
	}
	return l
}

func (l *lexicon) put(phrase string, e entry) {
	l.entries[phrase] = e
	if n := len(strings.Fields(phrase)); n > l.maxWords {
		l.maxWords = n
	}
}

// match finds the longest phrase starting at words[0] and returns its entry and word count.
func (l *lexicon) match(words []string) (entry, int, bool) {
	for n := l.maxWords; n > 0; n-- {
		if n > len(words) {
			continue
		}
		if e, ok := l.entries[strings.Join(words[:n], " ")]; ok {
			return e, n, true
		}
	}
	return entry{}, 0, false
}
