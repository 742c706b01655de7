package grammar

import (
	"eventual/internal/core/domain/expression"
	"eventual/internal/core/domain/syntax"
	"fmt"
	"strings"
)

// parser is a recursive descent parser over the token stream. It emits the
// tree in the shape the walker expects: modifiers follow the days they qualify
// and a weekday filter is the first child of its group.
//
//	expression := item { SEP item }
//	item       := [filter [","]] span [times]
//	span       := fragment [RANGE fragment]
//	fragment   := entry { SEP entry } [[","] MONTH] [year] | MONTH [entry { SEP entry }] [year]
//	entry      := [filter [","]] DAY
//	filter     := term { SEP term }
//	term       := WEEKDAY [RANGE WEEKDAY] | WEEKEND | WORKWEEK
//	times      := time { SEP time }
//	time       := [TIMEINTRO] (CLOCK | NUMBER) [MERIDIEM] [SUFFIX]
type parser struct {
	tokens []token
	pos    int
}

type fragment struct {
	text        string
	days        []syntax.Node
	month       *syntax.MonthName
	monthPeriod *syntax.MonthPeriod
	year        *syntax.Year
}

func (f fragment) nodes() []syntax.Node {
	nodes := []syntax.Node{}
	if f.monthPeriod != nil {
		nodes = append(nodes, f.monthPeriod)
	}
	nodes = append(nodes, f.days...)
	if f.month != nil {
		nodes = append(nodes, f.month)
	}
	if f.year != nil {
		nodes = append(nodes, f.year)
	}
	return nodes
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%s, %w", fmt.Sprintf(format, args...), expression.ErrMalformedInput)
}

func (p *parser) peek(offset int) token {
	if p.pos+offset >= len(p.tokens) {
		return token{kind: kindEnd}
	}
	return p.tokens[p.pos+offset]
}

func (p *parser) next() token {
	tok := p.peek(0)
	if tok.kind != kindEnd {
		p.pos++
	}
	return tok
}

func (p *parser) is(k kind) bool {
	return p.peek(0).kind == k
}

func (p *parser) textFrom(start int) string {
	texts := make([]string, 0, p.pos-start)
	for _, tok := range p.tokens[start:p.pos] {
		texts = append(texts, tok.text)
	}
	return strings.Join(texts, " ")
}

func unexpected(tok token) error {
	if tok.kind == kindEnd {
		return malformed("unexpected end of expression")
	}
	return malformed("unexpected %q", tok.text)
}

func (p *parser) parse() (syntax.Node, error) {
	for p.is(kindSep) {
		p.next()
	}
	if p.is(kindEnd) {
		return nil, malformed("empty expression")
	}
	nodes := []syntax.Node{}
	for {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, item...)
		if p.is(kindEnd) {
			break
		}
		if !p.is(kindSep) {
			return nil, unexpected(p.peek(0))
		}
		for p.is(kindSep) {
			p.next()
		}
		if p.is(kindEnd) {
			break
		}
	}
	return syntax.NewGroup(p.textFrom(0), nodes...), nil
}

func (p *parser) parseItem() ([]syntax.Node, error) {
	start := p.pos
	var filter *syntax.WeekdayFilter
	if p.atWeekday() {
		f, err := p.parseWeekdayFilter()
		if err != nil {
			return nil, err
		}
		if p.dayAhead() {
			// the filter belongs to the day that follows
			p.pos = start
		} else {
			filter = f
			p.skipComma()
		}
	}

	nodes, err := p.parseSpan()
	if err != nil {
		return nil, err
	}
	times, err := p.parseTimes()
	if err != nil {
		return nil, err
	}
	if times != nil {
		nodes = append(nodes, times)
	}
	if filter == nil {
		return nodes, nil
	}
	return []syntax.Node{syntax.NewGroup(p.textFrom(start), append([]syntax.Node{filter}, nodes...)...)}, nil
}

func (p *parser) parseSpan() ([]syntax.Node, error) {
	start := p.pos
	from, err := p.parseFragment()
	if err != nil {
		return nil, err
	}
	if !p.is(kindRange) {
		return from.nodes(), nil
	}
	p.next()
	to, err := p.parseFragment()
	if err != nil {
		return nil, err
	}
	return period(p.textFrom(start), from, to), nil
}

// period builds a DatePeriod. A month written on one side only is moved after
// the period so that both bounds inherit it. The end's year is moved too; a year
// written only on the start stays with the start.
func period(text string, from fragment, to fragment) []syntax.Node {
	hoisted := []syntax.Node{}
	switch {
	case from.month == nil && to.month != nil:
		hoisted = append(hoisted, to.month)
		to.month = nil
	case from.month != nil && to.month == nil && to.monthPeriod == nil:
		hoisted = append(hoisted, from.month)
		from.month = nil
	}
	if to.year != nil {
		hoisted = append(hoisted, to.year)
		to.year = nil
	}
	bounds := syntax.NewDatePeriod(
		text,
		syntax.NewGroup(from.text, from.nodes()...),
		syntax.NewGroup(to.text, to.nodes()...),
	)
	return append([]syntax.Node{bounds}, hoisted...)
}

func (p *parser) parseFragment() (fragment, error) {
	start := p.pos
	f := fragment{}
	switch {
	case p.is(kindMonth):
		month := p.next()
		f.month = syntax.NewMonthName(month.text, month.month)
		if p.entryAt(p.pos) {
			if err := p.parseDays(&f); err != nil {
				return f, err
			}
		} else {
			f.monthPeriod = syntax.NewMonthPeriod(month.text, f.month)
			f.month = nil
		}
	case p.entryAt(p.pos):
		if err := p.parseDays(&f); err != nil {
			return f, err
		}
		if p.is(kindMonth) {
			month := p.next()
			f.month = syntax.NewMonthName(month.text, month.month)
		} else if p.peek(0).text == "," && p.peek(1).kind == kindMonth {
			p.next()
			month := p.next()
			f.month = syntax.NewMonthName(month.text, month.month)
		}
	default:
		return f, unexpected(p.peek(0))
	}

	if p.isYear(0) {
		f.year = syntax.NewYear(p.next().text)
	} else if p.is(kindSep) && p.isYear(1) {
		p.next()
		f.year = syntax.NewYear(p.next().text)
	}
	f.text = p.textFrom(start)
	return f, nil
}

func (p *parser) parseDays(f *fragment) error {
	for {
		day, err := p.parseEntry()
		if err != nil {
			return err
		}
		f.days = append(f.days, day)
		if !p.is(kindSep) || !p.entryAt(p.pos+1) {
			return nil
		}
		p.next()
	}
}

func (p *parser) parseEntry() (syntax.Node, error) {
	start := p.pos
	if !p.atWeekday() {
		return p.parseDay()
	}
	filter, err := p.parseWeekdayFilter()
	if err != nil {
		return nil, err
	}
	p.skipComma()
	day, err := p.parseDay()
	if err != nil {
		return nil, err
	}
	return syntax.NewGroup(p.textFrom(start), filter, day), nil
}

func (p *parser) parseDay() (*syntax.Day, error) {
	if !p.isDay(0) {
		return nil, unexpected(p.peek(0))
	}
	return syntax.NewDay(p.next().text), nil
}

func (p *parser) parseWeekdayFilter() (*syntax.WeekdayFilter, error) {
	start := p.pos
	terms := []syntax.WeekdayTerm{}
	for {
		tok := p.next()
		switch tok.kind {
		case kindWeekday:
			if p.is(kindRange) && p.peek(1).kind == kindWeekday {
				p.next()
				terms = append(terms, syntax.WeekdaysBetween(tok.weekday, p.next().weekday))
			} else {
				terms = append(terms, syntax.Weekday(tok.weekday))
			}
		case kindWeekend:
			terms = append(terms, syntax.WeekendTerm())
		case kindWorkweek:
			terms = append(terms, syntax.WorkweekTerm())
		default:
			return nil, unexpected(tok)
		}
		if !p.is(kindSep) || !isWeekdayKind(p.peek(1).kind) {
			return syntax.NewWeekdayFilter(p.textFrom(start), terms...), nil
		}
		p.next()
	}
}

func (p *parser) startsTime() bool {
	tok := p.peek(0)
	switch tok.kind {
	case kindTimeIntro, kindClock:
		return true
	case kindNumber:
		after := p.peek(1).kind
		return after == kindMeridiem || after == kindTimeSuffix
	}
	return false
}

func (p *parser) parseTimes() (*syntax.TimeList, error) {
	if !p.startsTime() {
		return nil, nil
	}
	start := p.pos
	times := []*syntax.TimeOfDay{}
	for {
		if p.is(kindTimeIntro) {
			p.next()
		}
		t, err := p.parseTime()
		if err != nil {
			return nil, err
		}
		times = append(times, t)
		if p.is(kindRange) || p.is(kindTimeIntro) {
			return nil, malformed("time ranges are not supported")
		}
		if !p.is(kindSep) || !p.timeAt(1) {
			break
		}
		p.next()
	}
	return syntax.NewTimeList(p.textFrom(start), times...), nil
}

func (p *parser) parseTime() (*syntax.TimeOfDay, error) {
	tok := p.next()
	if tok.kind != kindClock && tok.kind != kindNumber {
		return nil, unexpected(tok)
	}
	text := tok.text
	if p.is(kindMeridiem) {
		text += " " + p.next().text
	}
	if p.is(kindTimeSuffix) {
		p.next()
	}
	return syntax.NewTimeOfDay(text), nil
}

// timeAt reports whether a time list continues at offset. A bare number only
// does when no month follows it.
func (p *parser) timeAt(offset int) bool {
	switch p.peek(offset).kind {
	case kindTimeIntro, kindClock:
		return true
	case kindNumber:
		after := p.peek(offset + 1).kind
		return p.peek(offset).digits <= 2 && after != kindMonth && after != kindRange
	}
	return false
}

func (p *parser) skipComma() {
	if p.peek(0).text == "," {
		p.next()
	}
}

func (p *parser) atWeekday() bool {
	return isWeekdayKind(p.peek(0).kind)
}

func isWeekdayKind(k kind) bool {
	return k == kindWeekday || k == kindWeekend || k == kindWorkweek
}

// isDay accepts one or two digit numbers from 1 to 31.
func (p *parser) isDay(offset int) bool {
	tok := p.peek(offset)
	return tok.kind == kindNumber && tok.digits <= 2 && tok.number >= 1 && tok.number <= 31
}

func (p *parser) isYear(offset int) bool {
	tok := p.peek(offset)
	return tok.kind == kindShortYear || (tok.kind == kindNumber && tok.digits == 4)
}

// dayAhead reports whether a day number follows a weekday filter directly,
// with nothing but a comma in between.
func (p *parser) dayAhead() bool {
	if p.peek(0).text == "," {
		return p.isDay(1) && !p.peek(1).afterFiller && !p.startsTimeAt(1)
	}
	return p.isDay(0) && !p.peek(0).afterFiller && !p.startsTimeAt(0)
}

func (p *parser) startsTimeAt(offset int) bool {
	after := p.peek(offset + 1).kind
	return after == kindMeridiem || after == kindTimeSuffix
}

// entryAt reports whether a day entry starts at pos without consuming anything.
func (p *parser) entryAt(pos int) bool {
	saved := p.pos
	defer func() { p.pos = saved }()
	p.pos = pos
	if p.isDay(0) {
		return !p.startsTimeAt(0)
	}
	if !p.atWeekday() {
		return false
	}
	if _, err := p.parseWeekdayFilter(); err != nil {
		return false
	}
	return p.dayAhead()
}
