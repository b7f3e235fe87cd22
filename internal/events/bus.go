package events

import (
	platformevents "ecopro_backend/platform/events"
	"ecopro_backend/platform/logger"
)

// InMemoryBus is the in-process bus implementation shared by all modules.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
