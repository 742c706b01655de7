package events

import (
	e "eventual/internal/core/domain/errors"
	"eventual/internal/core/domain/logging"
	"eventual/internal/http/handlers/response"
	"net/http"

	"github.com/r3labs/sse/v2"
)

// Handler subscribes a client to a stream opened by the stream endpoint.
type Handler struct {
	log       logging.Logger
	sseServer *sse.Server
}

func New(log logging.Logger, sseServer *sse.Server) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	return &Handler{log: log, sseServer: sseServer}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	streamID := r.URL.Query().Get("stream")
	if streamID == "" || !h.sseServer.StreamExists(streamID) {
		response.RenderError(rw, "invalid stream", http.StatusNotFound)
		return
	}

	h.log.Info(r.Context(), "Subscribed to stream.", logging.Entry("streamId", streamID))
	h.sseServer.ServeHTTP(rw, r)
	h.log.Info(r.Context(), "Unsubscribed from stream.", logging.Entry("streamId", streamID))
}
