package response

import (
	"encoding/json"
	"errors"
	"eventual/internal/core/domain/expression"
	ratelimiter "eventual/internal/core/domain/rate_limiter"
	"fmt"
	"math"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, "internal error", http.StatusInternalServerError)
}

func RenderRateLimitExceeded(rw http.ResponseWriter, err error) {
	var exceeded *ratelimiter.ExceededError
	if errors.As(err, &exceeded) {
		seconds := int(math.Ceil(exceeded.ResetIn.Seconds()))
		rw.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}
	RenderError(rw, ratelimiter.ErrRateLimitExceeded.Error(), http.StatusTooManyRequests)
}

// RenderServiceError maps an error returned by an expression service to a
// response. Problems with the expression itself are rendered with their
// message, anything else is an internal error.
func RenderServiceError(rw http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
		RenderRateLimitExceeded(rw, err)
	case expression.IsInputError(err):
		RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
	default:
		RenderInternalError(rw)
	}
}

func RenderError(rw http.ResponseWriter, msg string, status int) {
	Render(rw, errorResponse{Error: msg}, status)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
