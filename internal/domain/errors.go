package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSeatAccess means a write targeted a cell that is not an empty seat.
	ErrInvalidSeatAccess = errors.New("invalid seat access")
	// ErrUnsupportedGroupSize means a group is outside 1..4.
	ErrUnsupportedGroupSize = errors.New("unsupported group size")
	// ErrNoFeasiblePlacement means no empty seat admits the current group.
	ErrNoFeasiblePlacement = errors.New("no feasible placement")
	ErrInvalidLayout       = errors.New("invalid layout")
	ErrNotFound            = errors.New("not found")
)

// PlacementError reports the group a run could not seat.
type PlacementError struct {
	Size      int
	GroupID   int
	Remaining int // groups still queued after this one
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("no feasible placement for group %d of size %d (%d groups left)", e.GroupID, e.Size, e.Remaining)
}

func (e *PlacementError) Unwrap() error { return ErrNoFeasiblePlacement }
