package syntax

import "eventual/internal/core/domain/calendar"

type WeekdayTermKind int

const (
	SingleWeekday WeekdayTermKind = iota
	WeekdayRange
	Weekend
	Workweek
)

type WeekdayTerm struct {
	Kind WeekdayTermKind
	From int
	To   int
}

func Weekday(day int) WeekdayTerm {
	return WeekdayTerm{Kind: SingleWeekday, From: day, To: day}
}

func WeekdaysBetween(from int, to int) WeekdayTerm {
	return WeekdayTerm{Kind: WeekdayRange, From: from, To: to}
}

func WeekendTerm() WeekdayTerm {
	return WeekdayTerm{Kind: Weekend}
}

func WorkweekTerm() WeekdayTerm {
	return WeekdayTerm{Kind: Workweek}
}

type WeekdayFilter struct {
	text  string
	terms []WeekdayTerm
}

func NewWeekdayFilter(text string, terms ...WeekdayTerm) *WeekdayFilter {
	return &WeekdayFilter{text: text, terms: terms}
}

func (n *WeekdayFilter) Text() string { return n.text }
func (n *WeekdayFilter) Children() []Node { return nil }
func (n *WeekdayFilter) Accept(v Visitor) error { return v.VisitWeekdayFilter(n) }
func (n *WeekdayFilter) Terms() []WeekdayTerm { return n.terms }

// Weekdays expands the terms into a set. Ranges are inclusive and wrap past Saturday,
// weekends are Saturday and Sunday, the workweek is Monday to Friday.
func (n *WeekdayFilter) Weekdays() calendar.WeekdaySet {
	set := calendar.NewWeekdaySet()
	for _, term := range n.terms {
		switch term.Kind {
		case SingleWeekday:
			set = set.Add(term.From)
		case WeekdayRange:
			if term.From < calendar.Sunday || term.From > calendar.Saturday {
				continue
			}
			for d := term.From; ; d = (d + 1) % 7 {
				set = set.Add(d)
				if d == term.To || set.Len() == 7 {
					break
				}
			}
		case Weekend:
			set = set.Add(calendar.Saturday).Add(calendar.Sunday)
		case Workweek:
			for d := calendar.Monday; d <= calendar.Friday; d++ {
				set = set.Add(d)
			}
		}
	}
	return set
}
