package entity

// Order and item statuses are plain strings in the DB.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	OrderTypeDineIn  = "dine_in"
	OrderTypeTakeOut = "take_out"
)

// transition whitelist; anything not listed is rejected
var orderTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCompleted, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCompleted, StatusCancelled},
	StatusReady:     {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

func ValidStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

func ValidOrderType(t string) bool {
	return t == OrderTypeDineIn || t == OrderTypeTakeOut
}

// CanTransition reports whether from -> to is an allowed status change.
// Terminal statuses (completed, cancelled) allow nothing.
func CanTransition(from, to string) bool {
	for _, t := range orderTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func IsTerminal(s string) bool {
	return s == StatusCompleted || s == StatusCancelled
}
