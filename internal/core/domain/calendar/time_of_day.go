package calendar

import "fmt"

type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) Less(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
