package services

import "go.uber.org/zap"

// Event names published after successful writes.
const (
	EventItemCreated   = "item.created"
	EventItemUpdated   = "item.updated"
	EventItemDeleted   = "item.deleted"
	EventOutfitCreated = "outfit.created"
	EventOutfitUpdated = "outfit.updated"
	EventOutfitDeleted = "outfit.deleted"
)

// EventPublisher sends domain events to a broker. *rabbitmq.Client implements it.
type EventPublisher interface {
	Publish(event string, payload map[string]interface{}) error
}

// publish is best effort: the write it describes has already happened, so a broker
// failure is logged and swallowed.
func publish(p EventPublisher, log *zap.Logger, event string, payload map[string]interface{}) {
	if p == nil {
		log.Debug("event publisher not configured, skipping", zap.String("event", event))
		return
	}
	if err := p.Publish(event, payload); err != nil {
		log.Warn("failed to publish event", zap.String("event", event), zap.Error(err))
	}
}
