package engine

import (
	"fmt"
	"sync"
)

// Registry resolves a transport mode to its strategy instance. Strategies
// are built lazily on first request and reused afterwards. Construction
// is side-effect-free and idempotent, so a duplicate build under
// concurrent first access is harmless; LoadOrStore guarantees every
// caller still observes a single instance per mode.
//
// The registry is explicitly constructed and injected into the Engine by
// whoever assembles it. There is no package-level singleton.
type Registry struct {
	factories map[TransportMode]func() Strategy
	built     sync.Map // TransportMode -> Strategy
}

// NewRegistry creates a registry covering the four supported modes.
func NewRegistry() *Registry {
	return &Registry{
		factories: map[TransportMode]func() Strategy{
			ModeRoad: newRoadStrategy,
			ModeRail: newRailStrategy,
			ModeSea:  newSeaStrategy,
			ModeAir:  newAirStrategy,
		},
	}
}

// Strategy returns the strategy for a mode, building it on first use.
// Unsupported modes fail explicitly; there is no silent default.
func (r *Registry) Strategy(mode TransportMode) (Strategy, error) {
	if cached, ok := r.built.Load(mode); ok {
		return cached.(Strategy), nil
	}

	factory, ok := r.factories[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}

	actual, _ := r.built.LoadOrStore(mode, factory())
	return actual.(Strategy), nil
}

// Modes returns the supported transport modes in a stable order.
func (r *Registry) Modes() []TransportMode {
	return []TransportMode{ModeRoad, ModeRail, ModeSea, ModeAir}
}
