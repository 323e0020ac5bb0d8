package workorder

import (
	"errors"
	"fmt"

	"fieldservice/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel wrapped by every InvalidTransitionError.
var ErrInvalidTransition = errors.New("status transition is not allowed")

// Status represents the lifecycle state of a work order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct field-service workflow.
//
// State transitions:
//
//	Pending ──> InProgress ──> Completed
//	   ▲             │
//	   └─────────────┘
//	(dispatcher override only)
//
// Completed is terminal: no transition leads out of it, and the only way
// into it is Complete() from InProgress. Status is a value object that
// validates state transitions and provides string representations for
// persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a work order is first created.
	// Orders in this status are waiting for a technician to claim them.
	Pending

	// InProgress indicates a technician has claimed the order and is
	// executing the job. Progress saves are only allowed in this status.
	InProgress

	// Completed indicates the job has been finished and the captured data
	// accepted. This is a terminal state with no further transitions.
	Completed
)

// getStatusStrings returns a map of Status values to their persisted string
// representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		InProgress: "in_progress",
		Completed:  "completed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		InProgress: "in_progress",
		Completed:  "completed",
	}
}

// StatusFromString parses a persisted status string back into a Status.
//
// Returns an error for any string that is not one of "pending",
// "in_progress", "completed".
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, InProgress, Completed.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status.
//
// Returns "pending", "in_progress" or "completed" for valid statuses and
// "unknown" for everything else. Implements fmt.Stringer and is safe to call
// on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed
}

// Claim transitions the status to InProgress.
//
// Valid transitions:
//   - Pending -> InProgress
//
// Every other source status yields an InvalidTransitionError. In particular
// an order already in progress cannot be claimed again, and a completed
// order can never be picked back up.
func (s Status) Claim() (Status, error) {
	if s != Pending {
		return Unknown, NewInvalidTransitionError(s, InProgress)
	}
	return InProgress, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - InProgress -> Completed
//
// A pending order cannot be completed directly; the job must be claimed
// first. Completed is terminal, so completing twice also fails.
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return Unknown, NewInvalidTransitionError(s, Completed)
	}
	return Completed, nil
}

// ForceTo transitions the status to an arbitrary target on dispatcher
// authority.
//
// Valid transitions:
//   - Pending <-> InProgress (both directions)
//
// The override never creates or undoes completion: any transition into or
// out of Completed is rejected, as is forcing to the current status.
func (s Status) ForceTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if s == target || s == Completed || target == Completed || s == Unknown {
		return Unknown, NewInvalidTransitionError(s, target)
	}

	return target, nil
}

// InvalidTransitionError reports a status transition the state machine
// forbids. It carries both endpoints so callers can render the exact
// violation.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// endpoints.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	if e.From == e.To {
		return fmt.Sprintf("%s: order is already %s", ErrInvalidTransition, e.From)
	}
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
