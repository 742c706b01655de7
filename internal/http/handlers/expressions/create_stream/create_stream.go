package createstream

import (
	e "eventual/internal/core/domain/errors"
	"eventual/internal/core/domain/expression"
	"eventual/internal/core/services"
	service "eventual/internal/core/services/stream_expression"
	"eventual/internal/http/handlers/request"
	"eventual/internal/http/handlers/response"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service  services.Service[service.Input, service.Result]
	fallback expression.Language
}

func New(
	service services.Service[service.Input, service.Result],
	fallback expression.Language,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, fallback: fallback}
}

type Input struct {
	request.Expression
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i, i.Fields()...)
}

type Result struct {
	Stream string `json:"stream"`
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

	result, err := h.service.Run(r.Context(), service.Input{
		Query:       input.Query,
		Language:    lang,
		DefaultYear: input.Year(),
		ClientKey:   request.ClientKey(r),
	})
	if err != nil {
		response.RenderServiceError(rw, err)
		return
	}

	response.Render(rw, Result{Stream: result.StreamID}, http.StatusCreated)
}
