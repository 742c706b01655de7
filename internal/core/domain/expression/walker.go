package expression

import (
	"eventual/internal/core/domain/calendar"
	c "eventual/internal/core/domain/common"
	"eventual/internal/core/domain/syntax"
)

// stamped is a date-bearing node together with the context in force at its position.
type stamped struct {
	node syntax.Node
	ctx  Context
}

// walker assigns contexts right to left. Year, month and times persist for the
// whole walk, the weekday filter is taken from the first child of each group.
// It expands nothing, so it never fails on a weekday mismatch.
type walker struct {
	ctx   Context
	found []stamped
}

// stamp returns the date-bearing nodes of the tree in textual order.
func stamp(root syntax.Node, seed Context) ([]stamped, error) {
	w := &walker{ctx: seed}
	children := []syntax.Node{root}
	if group, ok := root.(*syntax.Group); ok {
		children = group.Children()
	}
	if err := w.walkGroup(children); err != nil {
		return nil, err
	}
	for i, j := 0, len(w.found)-1; i < j; i, j = i+1, j-1 {
		w.found[i], w.found[j] = w.found[j], w.found[i]
	}
	return w.found, nil
}

func (w *walker) walkGroup(children []syntax.Node) error {
	outer := w.ctx.Weekdays
	w.ctx.Weekdays = calendar.WeekdaySet{}
	if len(children) > 0 {
		if filter, ok := children[0].(*syntax.WeekdayFilter); ok {
			w.ctx.Weekdays = filter.Weekdays()
		}
	}
	for i := len(children) - 1; i >= 0; i-- {
		if err := children[i].Accept(w); err != nil {
			return err
		}
	}
	w.ctx.Weekdays = outer
	return nil
}

func (w *walker) push(node syntax.Node) error {
	w.found = append(w.found, stamped{node: node, ctx: w.ctx})
	return nil
}

func (w *walker) VisitGroup(n *syntax.Group) error {
	return w.walkGroup(n.Children())
}

func (w *walker) VisitYear(n *syntax.Year) error {
	year, err := n.Value()
	if err != nil {
		return malformed(err)
	}
	w.ctx.Year = year
	return nil
}

func (w *walker) VisitMonthName(n *syntax.MonthName) error {
	month, err := n.Value()
	if err != nil {
		return malformed(err)
	}
	w.ctx.Month = c.NewOptional(month, true)
	return nil
}

func (w *walker) VisitWeekdayFilter(*syntax.WeekdayFilter) error {
	return nil
}

func (w *walker) VisitTimeList(n *syntax.TimeList) error {
	times, err := n.Times()
	if err != nil {
		return malformed(err)
	}
	w.ctx.Times = times
	return nil
}

func (w *walker) VisitTimeOfDay(*syntax.TimeOfDay) error {
	return nil
}

func (w *walker) VisitDay(n *syntax.Day) error {
	return w.push(n)
}

func (w *walker) VisitMonthPeriod(n *syntax.MonthPeriod) error {
	return w.push(n)
}

func (w *walker) VisitDatePeriod(n *syntax.DatePeriod) error {
	return w.push(n)
}
