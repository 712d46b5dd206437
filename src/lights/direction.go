package lights

import (
	"errors"
	"fmt"
	"log/slog"

	"liftsim/src/button"
	"liftsim/src/elev"
	"liftsim/src/event"
	"liftsim/src/types"
)

var ErrNilCar = errors.New("direction indicator needs a car")

// DirectionIndicator mirrors a car's direction onto an up/down arrow pair.
type DirectionIndicator struct {
	car     *elev.Car
	up      *button.ActivityButton
	down    *button.ActivityButton
	changed event.Signal
	subs    event.Group
}

func NewDirectionIndicator(car *elev.Car) (*DirectionIndicator, error) {
	if car == nil {
		return nil, ErrNilCar
	}
	d := &DirectionIndicator{
		car:  car,
		up:   button.New("Up Arrow", false, true, nil),
		down: button.New("Down Arrow", false, true, nil),
	}
	d.subs.Add(d.up.OnChanged(d.buttonChanged))
	d.subs.Add(d.down.OnChanged(d.buttonChanged))
	d.subs.Add(car.OnStateChanged(func(types.Behaviour) { d.syncLights(car.Direction()) }))
	d.subs.Add(car.OnFinished(func() { d.syncLights(types.DirNone) }))
	return d, nil
}

func (d *DirectionIndicator) Car() *elev.Car {
	return d.car
}

func (d *DirectionIndicator) Up() button.State {
	return d.up
}

func (d *DirectionIndicator) Down() button.State {
	return d.down
}

func (d *DirectionIndicator) OnChanged(fn func()) event.Unsubscribe {
	return d.changed.Subscribe(fn)
}

// Close detaches the indicator from its car.
func (d *DirectionIndicator) Close() {
	d.subs.Close()
}

func (d *DirectionIndicator) String() string {
	return fmt.Sprintf("Direction panel for %s on floor %d with %s and %s",
		d.car.Name(), d.car.CurrentFloor().Number, d.down, d.up)
}

func (d *DirectionIndicator) syncLights(dir types.Direction) {
	switch dir {
	case types.DirUp:
		d.up.Activate()
		d.down.Deactivate()
	case types.DirDown:
		d.up.Deactivate()
		d.down.Activate()
	default:
		d.up.Deactivate()
		d.down.Deactivate()
	}
}

func (d *DirectionIndicator) buttonChanged() {
	slog.Debug("Direction lights changed", "car", d.car.Name(), "up", d.up.IsActive(), "down", d.down.IsActive())
	d.changed.Emit()
}
