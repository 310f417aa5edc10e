package domain

import (
	"fmt"
	"strings"
)

// GroupSize is the number of people in one indivisible party.
type GroupSize int

const (
	Single GroupSize = 1
	Pair   GroupSize = 2
	Trio   GroupSize = 3
	Quad   GroupSize = 4
)

// MaxGroupSize is the largest party the engine can seat.
const MaxGroupSize = int(Quad)

// ParseGroupSize converts a raw queue entry into a GroupSize.
func ParseGroupSize(n int) (GroupSize, error) {
	switch GroupSize(n) {
	case Single, Pair, Trio, Quad:
		return GroupSize(n), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedGroupSize, n)
	}
}

// PopOrder selects which group leaves the queue next.
type PopOrder int

const (
	Descending PopOrder = iota // largest group first
	Ascending                  // smallest group first
	Random                     // uniform draw
)

func (o PopOrder) String() string {
	switch o {
	case Ascending:
		return "asc"
	case Random:
		return "random"
	default:
		return "desc"
	}
}

// ParsePopOrder accepts asc|desc|random (and a few long forms).
func ParsePopOrder(s string) (PopOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc", "descending", "largest":
		return Descending, nil
	case "asc", "ascending", "smallest":
		return Ascending, nil
	case "random", "rand", "shuffle":
		return Random, nil
	default:
		return Descending, fmt.Errorf("unknown pop order %q", s)
	}
}

func (o PopOrder) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *PopOrder) UnmarshalText(b []byte) error {
	v, err := ParsePopOrder(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Strategy names a placement algorithm.
type Strategy int

const (
	StrategyExhaustive Strategy = iota // full-grid greedy scan
	StrategyPriority                   // greedy driven by a max-distance queue
	StrategyNaive                      // random feasible anchor, baseline only
)

func (s Strategy) String() string {
	switch s {
	case StrategyPriority:
		return "priority"
	case StrategyNaive:
		return "naive"
	default:
		return "exhaustive"
	}
}

// ParseStrategy accepts naive|priority|exhaustive.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exhaustive", "greedy":
		return StrategyExhaustive, nil
	case "priority", "pq", "heap":
		return StrategyPriority, nil
	case "naive", "random":
		return StrategyNaive, nil
	default:
		return StrategyExhaustive, fmt.Errorf("unknown strategy %q", s)
	}
}

func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
