package marketplace

// forward is the single-step forward edge of the booking lifecycle.
var forward = map[string]string{
	StatusPending:    StatusConfirmed,
	StatusConfirmed:  StatusInProgress,
	StatusInProgress: StatusCompleted,
}

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from one status to
// another. Forward moves follow pending -> confirmed -> in_progress ->
// completed one step at a time; cancelled is reachable from any state that
// is not already terminal. Everything else, including backward moves, is
// rejected.
func CanTransition(from, to string) bool {
	if !ValidStatus(from) || !ValidStatus(to) {
		return false
	}
	if to == StatusCancelled {
		return from != StatusCompleted && from != StatusCancelled
	}
	return forward[from] == to
}

// Terminal reports whether a status admits no further transitions.
func Terminal(s string) bool {
	return s == StatusCompleted || s == StatusCancelled
}
