package domain

// OperationState tracks the single in-flight slot of a component instance.
type OperationState int

const (
	StateIdle OperationState = iota
	StateInFlight
)

func (s OperationState) String() string {
	switch s {
	case StateInFlight:
		return "in-flight"
	default:
		return "idle"
	}
}
