// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"ecopro_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Catalog Domain Events
// =============================================================================

// ProductUpdated is published when a catalog product is created, changed or
// deleted. Valorisation caches depend on the savings tables it carries.
type ProductUpdated struct {
	BaseEvent
	ProductID uuid.UUID `json:"productId"`
}

func (e ProductUpdated) EventName() string { return "catalog.product.updated" }

// =============================================================================
// Projects Domain Events
// =============================================================================

// ProjectProductsChanged is published when a project's product associations
// change (add, update, remove) or when the project itself is edited.
type ProjectProductsChanged struct {
	BaseEvent
	ProjectID uuid.UUID `json:"projectId"`
}

func (e ProjectProductsChanged) EventName() string { return "projects.products.changed" }

// =============================================================================
// Delegates Domain Events
// =============================================================================

// DelegatePriceUpdated is published when a delegate's market price changes.
type DelegatePriceUpdated struct {
	BaseEvent
	DelegateID uuid.UUID `json:"delegateId"`
}

func (e DelegatePriceUpdated) EventName() string { return "delegates.price.updated" }
