package schema

import (
	"encoding/json"
	"eventual/internal/core/domain/calendar"
	"eventual/internal/core/domain/expression"
)

type Occurrence struct {
	ID    string         `json:"id"`
	Query string         `json:"query"`
	Value calendar.Value `json:"value"`
}

func FromOccurrence(o expression.Occurrence) Occurrence {
	return Occurrence{ID: o.ID, Query: o.Query, Value: o.Value}
}

func (o *Occurrence) Marshal() ([]byte, error) {
	return json.Marshal(o)
}

func (o *Occurrence) Unmarshal(data []byte) error {
	return json.Unmarshal(data, o)
}
