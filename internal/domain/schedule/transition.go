package schedule

// Operation is a caller-intended transition on a slot.
type Operation string

const (
	OpRequest Operation = "request" // student claims an available slot
	OpAccept  Operation = "accept"  // tutor confirms a pending request
	OpReject  Operation = "reject"  // tutor declines a pending request
	OpCancel  Operation = "cancel"  // tutor cancels, pre- or post-booking
)

// transitions is the complete legality table: (operation, current status) ->
// next status. Any combination absent here is illegal; canceled appears in no
// row's current-status set, which makes it terminal.
var transitions = map[Operation]map[Status]Status{
	OpRequest: {
		StatusAvailable: StatusPending,
	},
	OpAccept: {
		StatusPending: StatusBooked,
	},
	OpReject: {
		StatusPending: StatusCanceled,
	},
	OpCancel: {
		StatusAvailable: StatusCanceled,
		StatusPending:   StatusCanceled,
		StatusBooked:    StatusCanceled,
	},
}

// Next returns the status an operation moves a slot to, and whether the
// transition is legal from the given status.
func Next(op Operation, from Status) (Status, bool) {
	next, ok := transitions[op][from]
	return next, ok
}

// SpawnsReviewRecord reports whether the transition creates the companion
// review record. Only acceptance does; rejection and cancellation never do.
func SpawnsReviewRecord(op Operation) bool {
	return op == OpAccept
}
