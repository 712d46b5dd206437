package sim

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"liftsim/src/config"
	"liftsim/src/dispatcher"
	"liftsim/src/elev"
	"liftsim/src/lights"
	"liftsim/src/timer"
	"liftsim/src/types"

	"github.com/tiendc/go-deepcopy"
)

var (
	ErrNoPanel      = errors.New("no call panel on floor")
	ErrUnknownCar   = errors.New("unknown car")
	ErrBadDirection = errors.New("call needs up or down")
)

// Building wires cars, their direction indicators and the floor call panels
// together. All dispatch runs through one scheduler.
type Building struct {
	floors     []types.Floor
	cars       []*elev.Car
	indicators []*lights.DirectionIndicator
	panels     []*dispatcher.CallPanel
	sched      *Scheduler
}

func NewBuilding(cfg config.Building, clock timer.TimeSource) (*Building, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Building{sched: NewScheduler()}
	for _, f := range cfg.Floors {
		if !slices.ContainsFunc(b.floors, func(t types.Floor) bool { return t.Number == f.Number }) {
			b.floors = append(b.floors, types.Floor{Number: f.Number, Label: f.Label})
		}
	}
	slices.SortFunc(b.floors, func(x, y types.Floor) int { return cmp.Compare(x.Number, y.Number) })

	dispatchCars := make([]dispatcher.Car, 0, len(cfg.Cars))
	for _, spec := range cfg.Cars {
		car, err := elev.NewCar(spec.Name, b.floors, clock, spec.StartFloor)
		if err != nil {
			return nil, fmt.Errorf("car %q: %w", spec.Name, err)
		}
		indicator, err := lights.NewDirectionIndicator(car)
		if err != nil {
			return nil, err
		}
		b.watch(car)
		b.cars = append(b.cars, car)
		b.indicators = append(b.indicators, indicator)
		dispatchCars = append(dispatchCars, car)
	}

	panelSpecs := cfg.Panels
	if len(panelSpecs) == 0 {
		for _, f := range b.floors {
			panelSpecs = append(panelSpecs, config.PanelSpec{Floor: f.Number})
		}
	}
	for _, spec := range panelSpecs {
		if b.panel(spec.Floor) != nil {
			slog.Warn("Skipping duplicate call panel", "floor", spec.Floor)
			continue
		}
		option, err := b.panelOption(spec)
		if err != nil {
			return nil, err
		}
		floor, _ := b.cars[0].Floor(spec.Floor)
		panel, err := dispatcher.NewCallPanel(floor, option, dispatchCars...)
		if err != nil {
			return nil, err
		}
		panel.SetExecutor(b.sched)
		b.panels = append(b.panels, panel)
	}

	slog.Info("Building ready", "floors", len(b.floors), "cars", len(b.cars), "panels", len(b.panels))
	return b, nil
}

func (b *Building) Floors() []types.Floor {
	return slices.Clone(b.floors)
}

func (b *Building) Cars() []*elev.Car {
	return slices.Clone(b.cars)
}

func (b *Building) Indicators() []*lights.DirectionIndicator {
	return slices.Clone(b.indicators)
}

func (b *Building) Panels() []*dispatcher.CallPanel {
	return slices.Clone(b.panels)
}

func (b *Building) Car(name string) (*elev.Car, bool) {
	for _, car := range b.cars {
		if car.Name() == name {
			return car, true
		}
	}
	return nil, false
}

// Call presses the up or down button of the panel on floor. It reports
// whether the button accepted the press.
func (b *Building) Call(floor int, dir types.Direction) (bool, error) {
	panel := b.panel(floor)
	if panel == nil {
		return false, fmt.Errorf("%w %d", ErrNoPanel, floor)
	}
	switch dir {
	case types.DirUp:
		return panel.UpButton().Execute(), nil
	case types.DirDown:
		return panel.DownButton().Execute(), nil
	}
	return false, ErrBadDirection
}

// Request sends a cab request to the named car through the scheduler.
func (b *Building) Request(name string, floors ...int) error {
	car, ok := b.Car(name)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCar, name)
	}
	for _, n := range floors {
		if _, ok := car.Floor(n); !ok {
			return fmt.Errorf("%w: %d", elev.ErrFloorOutOfRange, n)
		}
	}
	b.sched.Submit(fmt.Sprintf("%s to %v", name, floors), func() {
		if _, err := car.GoTo(floors...); err != nil {
			slog.Error("Cab request failed", "car", name, "floors", floors, "err", err)
		}
	})
	return nil
}

// Status snapshots every car.
func (b *Building) Status() []elev.CarStatus {
	live := make([]elev.CarStatus, len(b.cars))
	for i, car := range b.cars {
		live[i] = car.Status()
	}
	var out []elev.CarStatus
	if err := deepcopy.Copy(&out, &live); err != nil {
		slog.Error("Copying building status failed", "err", err)
		return live
	}
	return out
}

// RunScenario replays steps in order and stops at the first failing one.
func (b *Building) RunScenario(steps []config.Step) error {
	for i, step := range steps {
		if step.Car != "" {
			if err := b.Request(step.Car, step.Floors...); err != nil {
				return fmt.Errorf("scenario step %d: %w", i, err)
			}
			continue
		}
		dir, err := config.ParseDir(step.Dir)
		if err != nil {
			return fmt.Errorf("scenario step %d: %w", i, err)
		}
		accepted, err := b.Call(step.Floor, types.Direction(dir))
		if err != nil {
			return fmt.Errorf("scenario step %d: %w", i, err)
		}
		if !accepted {
			slog.Warn("Call ignored", "floor", step.Floor, "dir", types.Direction(dir))
		}
	}
	return nil
}

// Close detaches indicators and panels from the cars.
func (b *Building) Close() {
	for _, p := range b.panels {
		p.Close()
	}
	for _, d := range b.indicators {
		d.Close()
	}
}

func (b *Building) panel(floor int) *dispatcher.CallPanel {
	for _, p := range b.panels {
		if p.CallingFloor().Number == floor {
			return p
		}
	}
	return nil
}

// panelOption resolves a configured option. Auto leaves only the inward
// button on the top and bottom floors.
func (b *Building) panelOption(spec config.PanelSpec) (types.PanelOption, error) {
	option, err := config.ParseOption(spec.Option)
	if err != nil {
		return types.UpAndDown, err
	}
	switch option {
	case config.OptionUp:
		return types.UpOnly, nil
	case config.OptionDown:
		return types.DownOnly, nil
	case config.OptionBoth:
		return types.UpAndDown, nil
	}
	if len(b.floors) < 2 {
		return types.UpAndDown, nil
	}
	switch spec.Floor {
	case b.floors[len(b.floors)-1].Number:
		return types.DownOnly, nil
	case b.floors[0].Number:
		return types.UpOnly, nil
	}
	return types.UpAndDown, nil
}

func (b *Building) watch(car *elev.Car) {
	car.OnFloorChanged(func(e types.FloorChanged) {
		slog.Info("Floor changed", "car", car.Name(), "floor", e.Floor.Number, "dir", e.Direction)
	})
	car.OnStateChanged(func(s types.Behaviour) {
		slog.Info("State changed", "car", car.Name(), "floor", car.CurrentFloor().Number, "state", s)
	})
	car.OnFinished(func() {
		slog.Info("Car finished", "car", car.Name(), "floor", car.CurrentFloor().Number)
	})
}
