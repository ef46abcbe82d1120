package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
)

// Event types published on the club event channel.
const (
	EventAdminMessagePosted = "admin_message.posted"
	EventUserRoleChanged    = "user.role_changed"
	EventBlobOrphaned       = "media.blob_orphaned"
)

const publishTimeout = 5 * time.Second

// Event is the JSON payload of a domain event.
type Event struct {
	Type       string            `json:"type"`
	Actor      string            `json:"actor,omitempty"`
	Subject    string            `json:"subject,omitempty"`
	Detail     map[string]string `json:"detail,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// Publisher emits domain events to a single channel. A nil *Publisher, or one
// without a backend, drops events silently.
type Publisher struct {
	mq      *MQ
	channel string
}

// NewPublisher returns a Publisher writing to channel on m. m may be nil.
func NewPublisher(m *MQ, channel string) *Publisher {
	return &Publisher{mq: m, channel: channel}
}

// Emit publishes ev. Failures are logged and never returned: events are
// notifications, not part of any request's outcome.
func (p *Publisher) Emit(ctx context.Context, ev Event) {
	if p == nil || p.mq == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		log.Error("failed to encode event", "type", ev.Type, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	id, err := p.mq.Publish(ctx, p.channel, data, map[string]string{"type": ev.Type})
	if err != nil {
		log.Warn("failed to publish event", "type", ev.Type, "channel", p.channel, "error", err)
		return
	}
	log.Debug("published event", "type", ev.Type, "id", id)
}

// DecodeEvent parses a message produced by Emit.
func DecodeEvent(msg Message) (Event, error) {
	var ev Event
	err := json.Unmarshal(msg.Data, &ev)
	return ev, err
}
