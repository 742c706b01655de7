package contains

import (
	"context"
	"eventual/internal/core/domain/calendar"
	"eventual/internal/core/domain/expression"
	service "eventual/internal/core/services/check_membership"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubService struct {
	input  service.Input
	result service.Result
}

func (s *stubService) Run(ctx context.Context, input service.Input) (service.Result, error) {
	s.input = input
	return s.result, nil
}

func TestHandler(t *testing.T) {
	assert := require.New(t)
	stub := &stubService{result: service.Result{Contains: true}}
	handler := New(stub, expression.English, time.Hour)

	body := `{"query":"march 1 at 3pm","at":"2010-03-01 15:30","event_span_minutes":90}`
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/expressions/contains", strings.NewReader(body)))

	assert.Equal(http.StatusOK, rw.Code)
	assert.JSONEq(`{"contains":true}`, rw.Body.String())
	assert.Equal(expression.English, stub.input.Language)
	assert.Equal(90*time.Minute, stub.input.EventSpan)
	assert.Equal(calendar.MustTimestamp(2010, time.March, 1, 15, 30), stub.input.At)
}

func TestHandlerDefaultSpan(t *testing.T) {
	stub := &stubService{}
	handler := New(stub, expression.Spanish, time.Hour)

	body := `{"query":"1 de marzo","at":"2010-03-01"}`
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/expressions/contains", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rw.Code)
	require.JSONEq(t, `{"contains":false}`, rw.Body.String())
	require.Equal(t, time.Hour, stub.input.EventSpan)
	require.False(t, stub.input.At.IsTimestamp())
}

func TestHandlerValidation(t *testing.T) {
	cases := []struct {
		id   string
		body string
	}{
		{"missing at", `{"query":"1 de marzo"}`},
		{"bad at", `{"query":"1 de marzo","at":"tomorrow"}`},
		{"negative span", `{"query":"1 de marzo","at":"2010-03-01","event_span_minutes":-1}`},
	}
	for _, tc := range cases {
		t.Run(tc.id, func(t *testing.T) {
			handler := New(&stubService{}, expression.Spanish, time.Hour)
			rw := httptest.NewRecorder()
			handler.ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body)))
			require.Equal(t, http.StatusBadRequest, rw.Code)
		})
	}
}
