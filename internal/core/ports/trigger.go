package ports

import "go.trai.ch/faasbench/internal/core/domain"

// TriggerFactory builds triggers bound to the live deployment session.
//
//go:generate mockgen -source=trigger.go -destination=mocks/mock_trigger.go -package=mocks
type TriggerFactory interface {
	// New builds a trigger from what the provider reported after attaching it.
	New(spec domain.TriggerSpec) (domain.Trigger, error)

	// Decode rebuilds a trigger from its cache representation.
	// An unregistered type is domain.ErrUnknownTriggerType.
	Decode(blob map[string]any) (domain.Trigger, error)

	// Bind re-attaches a trigger loaded from the cache to the session.
	Bind(t domain.Trigger) error
}
