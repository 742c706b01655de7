package valuepublisher

import (
	"context"
	"encoding/json"
	"eventual/internal/core/domain/calendar"
	e "eventual/internal/core/domain/errors"
	"eventual/internal/core/domain/expression"
	"eventual/internal/core/domain/logging"
	"fmt"
	"time"

	"github.com/r3labs/sse/v2"
)

type payload struct {
	Value   *calendar.Value `json:"value,omitempty"`
	Message string          `json:"message,omitempty"`
}

// SSE publishes stream events to subscribers of an SSE server. Streams are
// removed once ttl has passed since they were opened, except the persistent
// ones, which are created up front and live as long as the server.
type SSE struct {
	log       logging.Logger
	sseServer *sse.Server
	ttl       time.Duration
}

func NewSSE(log logging.Logger, sseServer *sse.Server, ttl time.Duration, persistent ...string) *SSE {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	for _, streamID := range persistent {
		if !sseServer.StreamExists(streamID) {
			sseServer.CreateStream(streamID)
		}
	}
	return &SSE{log: log, sseServer: sseServer, ttl: ttl}
}

func (p *SSE) OpenStream(ctx context.Context, streamID string) error {
	if p.sseServer.StreamExists(streamID) {
		return fmt.Errorf("%q: %w", streamID, expression.ErrStreamExists)
	}
	p.sseServer.CreateStream(streamID)
	if p.ttl > 0 {
		time.AfterFunc(p.ttl, func() {
			p.sseServer.RemoveStream(streamID)
			p.log.Debug(context.Background(), "Stream expired.", logging.Entry("streamId", streamID))
		})
	}
	return nil
}

func (p *SSE) Publish(ctx context.Context, streamID string, event expression.StreamEvent) error {
	if !p.sseServer.StreamExists(streamID) {
		return fmt.Errorf("stream %q does not exist", streamID)
	}
	data, err := encode(event)
	if err != nil {
		return err
	}
	p.sseServer.Publish(streamID, &sse.Event{Event: []byte(event.Kind), Data: data})
	return nil
}

func encode(event expression.StreamEvent) ([]byte, error) {
	body := payload{Message: event.Message}
	if event.Kind == expression.ValueEvent {
		body.Value = &event.Value
	}
	return json.Marshal(body)
}
