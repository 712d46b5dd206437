// Door handling and floor traversal for a single car.
package elev

import (
	"fmt"
	"log/slog"
	"slices"

	"liftsim/src/config"
	"liftsim/src/types"
)

// GoTo queues the given floors and serves them. All floors are checked
// before anything changes. While the car is moving the call is ignored.
// The returned direction points from the current floor to the first target.
func (c *Car) GoTo(floorNumbers ...int) (types.Direction, error) {
	targets := make([]types.Floor, 0, len(floorNumbers))
	for _, n := range floorNumbers {
		f, ok := c.Floor(n)
		if !ok {
			return types.DirNone, fmt.Errorf("%w: %s has no floor %d", ErrFloorOutOfRange, c.name, n)
		}
		targets = append(targets, f)
	}
	if len(targets) == 0 {
		return types.DirNone, nil
	}
	if c.behaviour == types.Moving {
		slog.Warn("Ignoring request while moving", "car", c.name, "floors", floorNumbers)
		return types.DirNone, nil
	}

	result := types.DirectionTo(c.CurrentFloor().Number, targets[0].Number)
	c.pending = append(c.pending, targets...)
	if c.running {
		// A listener asked for more floors while the car is stopped mid-run.
		slog.Debug("Appending to running queue", "car", c.name, "pending", len(c.pending))
		return result, nil
	}

	c.running = true
	defer c.finish()
	slog.Info("Serving requests", "car", c.name, "from", c.CurrentFloor().Number, "floors", floorNumbers)
	for len(c.pending) > 0 {
		if i := slices.Index(c.pending, c.CurrentFloor()); i >= 0 {
			c.pending = slices.Delete(c.pending, i, i+1)
			c.stopHere()
			continue
		}
		c.hop()
	}
	return result, nil
}

// OpenDoor opens the door of a stopped car. It returns false when the car is
// moving or the door is already open.
func (c *Car) OpenDoor() bool {
	if c.behaviour != types.Idle {
		return false
	}
	c.clock.Pause(config.DoorOpenDuration)
	c.setBehaviour(types.DoorOpen)
	return true
}

// CloseDoor returns false when the door is already closed.
func (c *Car) CloseDoor() bool {
	if c.behaviour != types.DoorOpen {
		return false
	}
	c.setBehaviour(types.Idle)
	return true
}

func (c *Car) stopHere() {
	slog.Debug("Stopping at floor", "car", c.name, "floor", c.CurrentFloor().Number)
	if c.behaviour == types.Moving {
		c.setBehaviour(types.Idle)
	}
	c.CloseDoor()
	c.OpenDoor()
}

// hop moves one table entry toward the first queued floor.
func (c *Car) hop() {
	c.dir = types.DirectionTo(c.CurrentFloor().Number, c.pending[0].Number)
	c.CloseDoor()
	c.setBehaviour(types.Moving)

	c.floorIdx += int(c.dir)
	c.clock.Pause(config.TravelDuration)
	floor := c.CurrentFloor()
	slog.Debug("Arrived at floor", "car", c.name, "floor", floor.Number, "direction", c.dir)
	c.floorChanged.Emit(types.FloorChanged{Floor: floor, Direction: c.dir})
}

// finish runs on every exit from a GoTo run, including a panicking listener.
func (c *Car) finish() {
	c.running = false
	if len(c.pending) > 0 {
		slog.Error("Dropping unserved requests", "car", c.name, "pending", len(c.pending))
		c.pending = nil
	}
	if c.behaviour == types.Moving {
		c.setBehaviour(types.Idle)
	}
	c.dir = types.DirNone
	slog.Debug("Requests finished", "car", c.name, "floor", c.CurrentFloor().Number)
	c.finished.Emit()
}
