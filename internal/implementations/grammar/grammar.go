// Package grammar turns Spanish or English date phrases into syntax trees.
package grammar

import (
	"context"
	"eventual/internal/core/domain/expression"
	"eventual/internal/core/domain/syntax"
	"fmt"
	"sync"
)

var once sync.Once

type Grammar struct {
	lex *lexicon
}

func New(lang expression.Language) (*Grammar, error) {
	once.Do(func() {
		reWord.Longest()
	})
	switch lang {
	case expression.Spanish:
		return &Grammar{lex: spanish()}, nil
	case expression.English:
		return &Grammar{lex: english()}, nil
	default:
		return nil, fmt.Errorf("no grammar for %q, %w", lang, expression.ErrUnsupportedLanguage)
	}
}

// All builds a grammar for every supported language.
func All() map[expression.Language]expression.Grammar {
	grammars := make(map[expression.Language]expression.Grammar)
	for _, lang := range []expression.Language{expression.Spanish, expression.English} {
		g, err := New(lang)
		if err != nil {
			panic(err)
		}
		grammars[lang] = g
	}
	return grammars
}

func (g *Grammar) Parse(ctx context.Context, text string) (syntax.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	normalized, err := normalize(text)
	if err != nil {
		return nil, err
	}
	words, err := split(normalized)
	if err != nil {
		return nil, err
	}
	tokens, err := tokenize(words, g.lex)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	return p.parse()
}
