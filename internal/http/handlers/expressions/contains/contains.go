package contains

import (
	"errors"
	"eventual/internal/core/domain/calendar"
	e "eventual/internal/core/domain/errors"
	"eventual/internal/core/domain/expression"
	"eventual/internal/core/services"
	service "eventual/internal/core/services/check_membership"
	"eventual/internal/http/handlers/request"
	"eventual/internal/http/handlers/response"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service   services.Service[service.Input, service.Result]
	fallback  expression.Language
	eventSpan time.Duration
}

func New(
	service services.Service[service.Input, service.Result],
	fallback expression.Language,
	eventSpan time.Duration,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, fallback: fallback, eventSpan: eventSpan}
}

type Input struct {
	request.Expression
	EventSpanMinutes *int   `json:"event_span_minutes"`
	At               string `json:"at"`
}

func (i Input) Validate() error {
	fields := append(
		i.Fields(),
		validation.Field(&i.EventSpanMinutes, validation.Min(1), validation.Max(24*60)),
		validation.Field(&i.At, validation.Required, validation.By(isValue)),
	)
	return validation.ValidateStruct(&i, fields...)
}

func isValue(value interface{}) error {
	raw, _ := value.(string)
	if _, err := calendar.ParseValue(raw); err != nil {
		return errors.New("must be a date (2006-01-02) or a timestamp (2006-01-02T15:04)")
	}
	return nil
}

type Result struct {
	Contains bool `json:"contains"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := request.Decode(r.Body, &input); err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}
	lang, err := input.ResolveLanguage(h.fallback)
	if err != nil {
		response.RenderServiceError(rw, err)
		return
	}
	at, _ := calendar.ParseValue(input.At)
	span := h.eventSpan
	if input.EventSpanMinutes != nil {
		span = time.Duration(*input.EventSpanMinutes) * time.Minute
	}

	result, err := h.service.Run(r.Context(), service.Input{
		Query:       input.Query,
		Language:    lang,
		DefaultYear: input.Year(),
		EventSpan:   span,
		At:          at,
		ClientKey:   request.ClientKey(r),
	})
	if err != nil {
		response.RenderServiceError(rw, err)
		return
	}

	response.Render(rw, Result{Contains: result.Contains}, http.StatusOK)
}
