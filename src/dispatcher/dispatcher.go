package dispatcher

import (
	"errors"
	"fmt"
	"log/slog"

	"liftsim/src/button"
	"liftsim/src/elev"
	"liftsim/src/event"
	"liftsim/src/types"
)

var (
	ErrNoCars         = errors.New("call panel needs at least one car")
	ErrNilCar         = errors.New("call panel given a nil car")
	ErrFloorNotServed = errors.New("calling floor not served by car")
)

// Car is what a call panel needs from an elevator car.
type Car interface {
	Name() string
	Status() elev.CarStatus
	CurrentFloor() types.Floor
	IsDoorOpen() bool
	Floor(number int) (types.Floor, bool)
	GoTo(floorNumbers ...int) (types.Direction, error)
	OnStateChanged(fn func(types.Behaviour)) event.Unsubscribe
}

// Executor runs dispatch work. The default runs it immediately.
type Executor interface {
	Submit(label string, fn func())
}

type inline struct{}

func (inline) Submit(_ string, fn func()) { fn() }

// CallPanel is the up/down request station on one floor. Pressing a button
// sends the nearest stopped car, or every car when all of them are moving.
type CallPanel struct {
	callingFloor types.Floor
	cars         []Car
	up           *button.ActivityButton
	down         *button.ActivityButton
	exec         Executor
	changed      event.Signal
	subs         event.Group
}

func NewCallPanel(callingFloor types.Floor, option types.PanelOption, cars ...Car) (*CallPanel, error) {
	if len(cars) == 0 {
		return nil, ErrNoCars
	}
	for i, car := range cars {
		if car == nil {
			return nil, fmt.Errorf("%w at position %d", ErrNilCar, i)
		}
		if _, ok := car.Floor(callingFloor.Number); !ok {
			return nil, fmt.Errorf("%w: %s has no floor %d", ErrFloorNotServed, car.Name(), callingFloor.Number)
		}
	}

	p := &CallPanel{
		callingFloor: callingFloor,
		cars:         append([]Car(nil), cars...),
		exec:         inline{},
	}
	p.up = button.New("Request lift to go up", false, option != types.DownOnly, p.requestCars)
	p.down = button.New("Request lift to go down", false, option != types.UpOnly, p.requestCars)
	p.subs.Add(p.up.OnChanged(p.changed.Emit))
	p.subs.Add(p.down.OnChanged(p.changed.Emit))
	for _, car := range p.cars {
		car := car
		p.subs.Add(car.OnStateChanged(func(types.Behaviour) { p.retireButtons(car) }))
	}
	return p, nil
}

// SetExecutor routes dispatch through e; nil restores immediate execution.
func (p *CallPanel) SetExecutor(e Executor) {
	if e == nil {
		e = inline{}
	}
	p.exec = e
}

func (p *CallPanel) CallingFloor() types.Floor {
	return p.callingFloor
}

func (p *CallPanel) Cars() []Car {
	return append([]Car(nil), p.cars...)
}

func (p *CallPanel) UpButton() button.State {
	return p.up
}

func (p *CallPanel) DownButton() button.State {
	return p.down
}

func (p *CallPanel) OnChanged(fn func()) event.Unsubscribe {
	return p.changed.Subscribe(fn)
}

// Close drops the panel's subscriptions on its cars and buttons.
func (p *CallPanel) Close() {
	p.subs.Close()
}

func (p *CallPanel) String() string {
	return fmt.Sprintf("Call panel on floor %s with %s and %s", p.callingFloor, p.up, p.down)
}

func (p *CallPanel) requestCars() {
	p.exec.Submit(fmt.Sprintf("call floor %d", p.callingFloor.Number), p.dispatch)
}

func (p *CallPanel) dispatch() {
	statuses := make([]elev.CarStatus, len(p.cars))
	for i, car := range p.cars {
		statuses[i] = car.Status()
	}

	if assignee := findAssignee(statuses, p.callingFloor.Number); assignee != -1 {
		car := p.cars[assignee]
		slog.Info("Car requested", "car", car.Name(), "from", statuses[assignee].Floor.Number, "callingFloor", p.callingFloor.Number)
		p.goTo(car)
		return
	}

	slog.Info("All cars busy, requesting every car", "callingFloor", p.callingFloor.Number, "cars", len(p.cars))
	for _, car := range p.cars {
		p.goTo(car)
	}
}

func (p *CallPanel) goTo(car Car) {
	if _, err := car.GoTo(p.callingFloor.Number); err != nil {
		slog.Error("Dispatch failed", "car", car.Name(), "callingFloor", p.callingFloor.Number, "err", err)
	}
}

// retireButtons clears both buttons once any car opens its door here,
// whichever direction was asked for.
func (p *CallPanel) retireButtons(car Car) {
	if !car.IsDoorOpen() || car.CurrentFloor().Number != p.callingFloor.Number {
		return
	}
	p.up.Deactivate()
	p.down.Deactivate()
}
