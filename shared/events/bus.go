package events

import (
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/rs/zerolog/log"
)

const (
	TopicBookingStatusChanged = "booking:status_changed"
)

// StatusChanged is published after a booking status transition has been
// persisted. Subscribers run asynchronously and must not assume ordering.
type StatusChanged struct {
	BookingID string
	From      string
	To        string
	Actor     string
	At        time.Time
}

// Bus is the in-process event bus for domain events.
type Bus interface {
	PublishStatusChanged(event StatusChanged)
	SubscribeStatusChanged(fn func(event StatusChanged)) error
}

type bus struct {
	inner EventBus.Bus
}

// New builds the bus with the audit subscriber already registered, so every
// transition ends up in the structured log even if no other subscriber cares.
func New() Bus {
	b := &bus{
		inner: EventBus.New(),
	}

	if err := b.SubscribeStatusChanged(auditStatusChanged); err != nil {
		log.Error().Err(err).Msg("failed to register audit subscriber")
	}

	return b
}

func (b *bus) PublishStatusChanged(event StatusChanged) {
	b.inner.Publish(TopicBookingStatusChanged, event)
}

func (b *bus) SubscribeStatusChanged(fn func(event StatusChanged)) error {
	return b.inner.SubscribeAsync(TopicBookingStatusChanged, fn, false) //nolint:wrapcheck
}

func auditStatusChanged(event StatusChanged) {
	log.Info().
		Str("booking_id", event.BookingID).
		Str("from", event.From).
		Str("to", event.To).
		Str("actor", event.Actor).
		Time("at", event.At).
		Msg("booking status changed")
}
