package models

// Signal is a discrete trading decision for one test-set row.
type Signal int

const (
	SignalShort   Signal = -1
	SignalNeutral Signal = 0
	SignalLong    Signal = 1
)

func (s Signal) String() string {
	switch s {
	case SignalShort:
		return "short"
	case SignalLong:
		return "long"
	default:
		return "neutral"
	}
}
