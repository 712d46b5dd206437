package elev

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"liftsim/src/config"
	"liftsim/src/event"
	"liftsim/src/timer"
	"liftsim/src/types"

	"github.com/xyproto/randomstring"
)

var (
	ErrNoFloors        = errors.New("car needs at least one floor")
	ErrNilTimeSource   = errors.New("car needs a time source")
	ErrFloorOutOfRange = errors.New("floor out of range")
)

// Car is a single elevator. It is driven synchronously on the caller's stack
// and is not safe for concurrent use.
type Car struct {
	name      string
	floors    []types.Floor
	clock     timer.TimeSource
	floorIdx  int
	behaviour types.Behaviour
	dir       types.Direction
	pending   []types.Floor
	running   bool

	floorChanged event.Feed[types.FloorChanged]
	stateChanged event.Feed[types.Behaviour]
	finished     event.Signal
}

// NewCar builds a car serving floors, starting at startFloor when the table
// has it and at the lowest floor otherwise. An empty name is replaced by a
// generated one.
func NewCar(name string, floors []types.Floor, clock timer.TimeSource, startFloor int) (*Car, error) {
	if len(floors) == 0 {
		return nil, ErrNoFloors
	}
	if clock == nil {
		return nil, ErrNilTimeSource
	}
	if name == "" {
		name = "lift-" + randomstring.EnglishFrequencyString(config.DefaultNameLength)
	}

	table := make([]types.Floor, 0, len(floors))
	for _, f := range floors {
		if !slices.ContainsFunc(table, func(t types.Floor) bool { return t.Number == f.Number }) {
			table = append(table, f)
		}
	}
	slices.SortStableFunc(table, func(a, b types.Floor) int { return cmp.Compare(a.Number, b.Number) })

	car := &Car{
		name:      name,
		floors:    table,
		clock:     clock,
		behaviour: types.Idle,
		dir:       types.DirNone,
	}
	if idx, ok := car.indexOf(startFloor); ok {
		car.floorIdx = idx
	}
	slog.Debug("Car initialized", "car", name, "floor", car.CurrentFloor(), "floors", len(table))
	return car, nil
}

func (c *Car) Name() string {
	return c.name
}

func (c *Car) CurrentFloor() types.Floor {
	return c.floors[c.floorIdx]
}

func (c *Car) State() types.Behaviour {
	return c.behaviour
}

func (c *Car) Direction() types.Direction {
	return c.dir
}

func (c *Car) IsStopped() bool {
	return c.behaviour.Motion() == types.Stopped
}

func (c *Car) IsDoorOpen() bool {
	return c.behaviour.Door() == types.Open
}

// Floors returns a copy of the floor table, lowest first.
func (c *Car) Floors() []types.Floor {
	return slices.Clone(c.floors)
}

// Floor looks a floor up by number.
func (c *Car) Floor(number int) (types.Floor, bool) {
	idx, ok := c.indexOf(number)
	if !ok {
		return types.Floor{}, false
	}
	return c.floors[idx], true
}

func (c *Car) Pending() []types.Floor {
	return slices.Clone(c.pending)
}

func (c *Car) OnFloorChanged(fn func(types.FloorChanged)) event.Unsubscribe {
	return c.floorChanged.Subscribe(fn)
}

func (c *Car) OnStateChanged(fn func(types.Behaviour)) event.Unsubscribe {
	return c.stateChanged.Subscribe(fn)
}

// OnFinished fires once per GoTo run when the queue is drained.
func (c *Car) OnFinished(fn func()) event.Unsubscribe {
	return c.finished.Subscribe(fn)
}

func (c *Car) String() string {
	return fmt.Sprintf("%s on floor %s (%s, %s)", c.name, c.CurrentFloor(), c.behaviour, c.dir)
}

func (c *Car) indexOf(number int) (int, bool) {
	return slices.BinarySearchFunc(c.floors, number, func(f types.Floor, n int) int {
		return cmp.Compare(f.Number, n)
	})
}

func (c *Car) setBehaviour(b types.Behaviour) {
	if c.behaviour == b {
		return
	}
	slog.Debug("Car state changed", "car", c.name, "from", c.behaviour, "to", b, "floor", c.CurrentFloor().Number)
	c.behaviour = b
	c.stateChanged.Emit(b)
}
