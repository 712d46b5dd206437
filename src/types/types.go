package types

import "fmt"

// Floor identifies a level. Floors are compared by value.
type Floor struct {
	Number int
	Label  string
}

func (f Floor) String() string {
	return fmt.Sprintf("%d - %s", f.Number, f.Label)
}

type Direction int

const (
	DirUp   Direction = 1
	DirDown Direction = -1
	DirNone Direction = 0
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	}
	return "None"
}

// DirectionTo returns the direction of travel from one floor number to another.
func DirectionTo(from, to int) Direction {
	if from < to {
		return DirUp
	}
	if from > to {
		return DirDown
	}
	return DirNone
}

type Motion int

const (
	Stopped Motion = iota
	InMotion
)

type Door int

const (
	Closed Door = iota
	Open
)

// Behaviour is the composite car state. Moving with an open door has no value.
type Behaviour int

const (
	Idle Behaviour = iota
	DoorOpen
	Moving
)

func (b Behaviour) Motion() Motion {
	if b == Moving {
		return InMotion
	}
	return Stopped
}

func (b Behaviour) Door() Door {
	if b == DoorOpen {
		return Open
	}
	return Closed
}

func (b Behaviour) String() string {
	switch b {
	case DoorOpen:
		return "StoppedDoorOpen"
	case Moving:
		return "MovingDoorClosed"
	}
	return "StoppedDoorClosed"
}

// FloorChanged is emitted once per hop.
type FloorChanged struct {
	Floor     Floor
	Direction Direction
}

// PanelOption selects which call panel buttons are enabled.
type PanelOption int

const (
	UpAndDown PanelOption = iota
	UpOnly
	DownOnly
)

func (o PanelOption) String() string {
	switch o {
	case UpOnly:
		return "UpOnly"
	case DownOnly:
		return "DownOnly"
	}
	return "UpAndDown"
}
