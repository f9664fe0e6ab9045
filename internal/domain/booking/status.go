package booking

import "github.com/parlourhq/parlour-scheduler/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// transitions is the explicit state machine: pending → confirmed → completed,
// with cancellation allowed from pending and confirmed. Completed and
// cancelled are terminal, so a cancelled booking can never be resurrected.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// Occupies reports whether a booking in this status holds parlour capacity.
func (s Status) Occupies() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransition validates a status change against the transition table.
func CanTransition(from, to Status) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}
