package choreographer

import (
	"fmt"

	"github.com/euansprr-dev/CosmoNative-sub007/engine/element"
)

// Phase is the choreographer's primary state tag. Celebrations overlay the
// active phase without changing it.
type Phase uint8

const (
	// PhaseIdle means nothing is visible and no script is running.
	PhaseIdle Phase = iota
	// PhaseEntering means the entry script is in flight.
	PhaseEntering
	// PhaseActive means entry completed and the ambient loop is running.
	PhaseActive
	// PhaseTransitioning covers the whole zoom excursion, from ZoomTo until
	// the return script lands Home again.
	PhaseTransitioning
	// PhaseExiting means the exit script is in flight.
	PhaseExiting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEntering:
		return "entering"
	case PhaseActive:
		return "active"
	case PhaseTransitioning:
		return "transitioning"
	case PhaseExiting:
		return "exiting"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// TransitionKind tags the zoom interaction's state machine.
type TransitionKind uint8

const (
	// TransitionHome is the rest state: no element focused.
	TransitionHome TransitionKind = iota
	// TransitionTo means the zoom-in script toward Target is in flight.
	TransitionTo
	// TransitionShowing means Target fills the viewport.
	TransitionShowing
	// TransitionReturning means the return script away from Target is in
	// flight.
	TransitionReturning
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionHome:
		return "home"
	case TransitionTo:
		return "transitioningTo"
	case TransitionShowing:
		return "showingElement"
	case TransitionReturning:
		return "returningHome"
	default:
		return fmt.Sprintf("transition(%d)", uint8(k))
	}
}

// TransitionState is the zoom state machine's current value. Exactly one is
// active at a time; concurrent transition requests are rejected, never
// queued.
type TransitionState struct {
	// Kind tags the state.
	Kind TransitionKind

	// Target is the focused element for TransitionTo and TransitionShowing,
	// and the element being left for TransitionReturning. Zero for Home.
	Target element.ID
}

func (s TransitionState) String() string {
	if s.Kind == TransitionHome {
		return s.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", s.Kind, s.Target)
}
