package request

import (
	"encoding/json"
	"errors"
	c "eventual/internal/core/domain/common"
	"eventual/internal/core/domain/expression"
	"io"
	"net"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

const MaxQueryLength = 1024

var ErrInvalidRequestData = errors.New("invalid request data")

// Expression is the part of a request body shared by every expression endpoint.
type Expression struct {
	Query       string  `json:"query"`
	Language    *string `json:"language"`
	DefaultYear *int    `json:"default_year"`
}

func (i *Expression) Fields() []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(&i.Query, validation.Required, validation.Length(1, MaxQueryLength)),
		validation.Field(&i.DefaultYear, validation.Min(1), validation.Max(9999)),
	}
}

// ResolveLanguage resolves the requested language, fallback is used when none was given.
func (i *Expression) ResolveLanguage(fallback expression.Language) (expression.Language, error) {
	if i.Language == nil || strings.TrimSpace(*i.Language) == "" {
		return fallback, nil
	}
	return expression.ParseLanguage(*i.Language)
}

func (i *Expression) Year() c.Optional[int] {
	return c.FromPointer(i.DefaultYear)
}

// Decode reads a JSON body into v, rejecting unknown fields.
func Decode(r io.Reader, v interface{}) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return ErrInvalidRequestData
	}
	return nil
}

// ClientKey identifies the caller for rate limiting.
func ClientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
