package paycycle

import "time"

// State enum
type State string

const (
	StateDraft              State = "draft"
	StateBulletinsGenerated State = "bulletins_generated"
	StateApproved           State = "approved"
	StateClosed             State = "closed"
)

// States lists every lifecycle state in order.
func States() []State {
	return []State{StateDraft, StateBulletinsGenerated, StateApproved, StateClosed}
}

// CanTransition reports whether from -> to is a legal lifecycle transition.
// Transitions are monotonic; closed is terminal.
func CanTransition(from, to State) bool {
	switch from {
	case StateDraft:
		return to == StateBulletinsGenerated
	case StateBulletinsGenerated:
		return to == StateApproved
	case StateApproved:
		return to == StateClosed
	}
	return false
}

// PayCycle is one payroll period for one enterprise.
type PayCycle struct {
	ID           string
	EnterpriseID string
	Period       string
	StartDate    time.Time
	EndDate      time.Time
	State        State
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanRegenerate reports whether bulletins may be (re)generated in the current
// state. Regeneration is re-invokable until the cycle is approved.
func (c PayCycle) CanRegenerate() bool {
	return c.State == StateDraft || c.State == StateBulletinsGenerated
}
