package expression

import (
	"context"
	e "eventual/internal/core/domain/errors"
	"eventual/internal/core/domain/syntax"
	"fmt"
	"sort"
	"time"
)

// Grammar turns raw text of one language into a syntax tree. Failures wrap ErrMalformedInput.
type Grammar interface {
	Parse(ctx context.Context, text string) (syntax.Node, error)
}

type SequenceParser interface {
	Parse(ctx context.Context, text string, options Options) (*Sequence, error)
}

type Parser struct {
	grammars map[Language]Grammar
	now      func() time.Time
}

func NewParser(now func() time.Time, grammars map[Language]Grammar) *Parser {
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	for lang, g := range grammars {
		if g == nil {
			panic(e.NewNilArgumentError(fmt.Sprintf("grammars[%s]", lang)))
		}
	}
	return &Parser{grammars: grammars, now: now}
}

func (p *Parser) Languages() []Language {
	languages := make([]Language, 0, len(p.grammars))
	for lang := range p.grammars {
		languages = append(languages, lang)
	}
	sort.Slice(languages, func(i, j int) bool { return languages[i] < languages[j] })
	return languages
}

// Parse resolves text into a Sequence. Without a default year the sequence
// starts from the current year.
func (p *Parser) Parse(ctx context.Context, text string, options Options) (*Sequence, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	lang := options.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	grammar, ok := p.grammars[lang]
	if !ok {
		return nil, fmt.Errorf("no grammar for %q, %w", lang, ErrUnsupportedLanguage)
	}
	root, err := grammar.Parse(ctx, text)
	if err != nil {
		return nil, err
	}
	year := options.DefaultYear.Or(p.now().Year())
	return NewSequence(root, year, options.EventSpan), nil
}
