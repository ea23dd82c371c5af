package booking

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Blocks reports whether a booking in this status counts toward the
// non-overlap invariant of its garage.
func (s Status) Blocks() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusActive:
		return true
	default:
		return false
	}
}

// BlockingStatuses are the statuses considered by the conflict detector, in
// the order they appear in queries.
func BlockingStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusActive}
}

func (s Status) canTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusActive || next == StatusCancelled
	case StatusActive:
		return next == StatusCompleted
	default:
		return false
	}
}
