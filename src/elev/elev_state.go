package elev

import (
	"fmt"
	"log/slog"
	"slices"

	"liftsim/src/types"

	"github.com/tiendc/go-deepcopy"
)

// CarStatus is a detached snapshot of a car, safe to keep after the car moves on.
type CarStatus struct {
	Name      string
	Floor     types.Floor
	Behaviour types.Behaviour
	Dir       types.Direction
	Pending   []types.Floor
}

// Status copies the car's observable state.
func (c *Car) Status() CarStatus {
	live := CarStatus{
		Name:      c.name,
		Floor:     c.CurrentFloor(),
		Behaviour: c.behaviour,
		Dir:       c.dir,
		Pending:   c.pending,
	}
	var status CarStatus
	if err := deepcopy.Copy(&status, &live); err != nil {
		slog.Error("Copying car status failed", "car", c.name, "err", err)
		live.Pending = slices.Clone(c.pending)
		return live
	}
	return status
}

func (s CarStatus) IsStopped() bool {
	return s.Behaviour.Motion() == types.Stopped
}

func (s CarStatus) String() string {
	return fmt.Sprintf("%s: floor %d, %s, %s, %d pending", s.Name, s.Floor.Number, s.Behaviour, s.Dir, len(s.Pending))
}
