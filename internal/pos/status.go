package pos

type Status string

const (
	StatusPaid Status = "paid"
	StatusVoid Status = "void"
)

// Orders are immutable after settlement except for paid -> void.
func CanTransition(from, to Status) bool {
	return from == StatusPaid && to == StatusVoid
}
