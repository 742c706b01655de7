package grammar

import (
	"eventual/internal/core/domain/calendar"
	"time"
)

func spanish() *lexicon {
	return newLexicon().
		month(time.January, "enero", "ene").
		month(time.February, "febrero", "feb").
		month(time.March, "marzo", "mar").
		month(time.April, "abril", "abr").
		month(time.May, "mayo", "may").
		month(time.June, "junio", "jun").
		month(time.July, "julio", "jul").
		month(time.August, "agosto", "ago").
		month(time.September, "septiembre", "setiembre", "sept", "sep", "set").
		month(time.October, "octubre", "oct").
		month(time.November, "noviembre", "nov").
		month(time.December, "diciembre", "dic").
		weekday(calendar.Sunday, "domingo", "domingos", "dom").
		weekday(calendar.Monday, "lunes", "lun").
		weekday(calendar.Tuesday, "martes").
		weekday(calendar.Wednesday, "miercoles", "mie", "mier").
		weekday(calendar.Thursday, "jueves", "jue").
		weekday(calendar.Friday, "viernes", "vie").
		weekday(calendar.Saturday, "sabado", "sabados", "sab").
		add(kindWeekend, "fin de semana", "fines de semana", "finde", "findes").
		add(kindWorkweek, "entre semana", "dias de semana", "dias habiles", "dias laborables").
		add(kindSep, "y", "e").
		add(kindRange, "a", "al", "hasta").
		add(kindTimeIntro, "a las", "a la", "de las", "de la").
		add(kindTimeSuffix, "hrs", "hr", "hs", "h", "horas", "hora").
		add(kindFiller, "de", "del", "el", "la", "los", "las", "durante", "todo", "toda", "todos", "todas", "desde", "en")
}

func english() *lexicon {
	return newLexicon().
		month(time.January, "january", "jan").
		month(time.February, "february", "feb").
		month(time.March, "march", "mar").
		month(time.April, "april", "apr").
		month(time.May, "may").
		month(time.June, "june", "jun").
		month(time.July, "july", "jul").
		month(time.August, "august", "aug").
		month(time.September, "september", "sept", "sep").
		month(time.October, "october", "oct").
		month(time.November, "november", "nov").
		month(time.December, "december", "dec").
		weekday(calendar.Sunday, "sunday", "sundays", "sun").
		weekday(calendar.Monday, "monday", "mondays", "mon").
		weekday(calendar.Tuesday, "tuesday", "tuesdays", "tue", "tues").
		weekday(calendar.Wednesday, "wednesday", "wednesdays", "wed").
		weekday(calendar.Thursday, "thursday", "thursdays", "thu", "thur", "thurs").
		weekday(calendar.Friday, "friday", "fridays", "fri").
		weekday(calendar.Saturday, "saturday", "saturdays", "sat").
		add(kindWeekend, "weekend", "weekends", "week end", "week ends").
		add(kindWorkweek, "weekdays", "workdays", "week days", "working days", "business days").
		add(kindSep, "and").
		add(kindRange, "to", "through", "thru", "until", "till").
		add(kindTimeIntro, "at").
		add(kindTimeSuffix, "o'clock", "oclock", "h", "hrs").
		add(kindFiller, "the", "of", "in", "on", "during", "from", "every", "all", "each")
}
