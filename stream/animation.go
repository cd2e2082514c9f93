package stream

// An Animation renders its current state as a Frame.
type Animation interface {
	CalculateFrame() *Frame
}
