package sim

import (
	"errors"
	"testing"

	"liftsim/src/config"
	"liftsim/src/elev"
	"liftsim/src/timer"
	"liftsim/src/types"
)

func newBuilding(t *testing.T, cfg config.Building) *Building {
	t.Helper()
	b, err := NewBuilding(cfg, timer.NewSimClock())
	if err != nil {
		t.Fatalf("NewBuilding() error = %v", err)
	}
	return b
}

func mustCar(t *testing.T, b *Building, name string) *elev.Car {
	t.Helper()
	car, ok := b.Car(name)
	if !ok {
		t.Fatalf("no car %q", name)
	}
	return car
}

func TestDefaultBuildingLayout(t *testing.T) {
	b := newBuilding(t, config.Default())

	if len(b.Floors()) != 5 || len(b.Cars()) != 2 || len(b.Indicators()) != 2 {
		t.Errorf("floors=%d cars=%d indicators=%d, expected 5 2 2", len(b.Floors()), len(b.Cars()), len(b.Indicators()))
	}
	panels := b.Panels()
	if len(panels) != 5 {
		t.Fatalf("panels = %d, expected one per floor", len(panels))
	}

	tests := []struct {
		floor    int
		up, down bool
	}{
		{-1, true, false},
		{0, true, true},
		{2, true, true},
		{3, false, true},
	}
	for _, tt := range tests {
		p := b.panel(tt.floor)
		if p == nil {
			t.Fatalf("no panel on floor %d", tt.floor)
		}
		if p.UpButton().IsEnabled() != tt.up || p.DownButton().IsEnabled() != tt.down {
			t.Errorf("floor %d: up=%t down=%t, expected up=%t down=%t", tt.floor,
				p.UpButton().IsEnabled(), p.DownButton().IsEnabled(), tt.up, tt.down)
		}
	}
}

func TestConfiguredPanelOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Panels = []config.PanelSpec{{Floor: 3, Option: "both"}, {Floor: 1, Option: "down"}}
	b := newBuilding(t, cfg)

	if len(b.Panels()) != 2 {
		t.Fatalf("panels = %d, expected 2", len(b.Panels()))
	}
	if !b.panel(3).UpButton().IsEnabled() {
		t.Errorf("top floor panel configured with both buttons has up disabled")
	}
	if b.panel(1).UpButton().IsEnabled() {
		t.Errorf("down-only panel has up enabled")
	}
	if _, err := b.Call(0, types.DirUp); !errors.Is(err, ErrNoPanel) {
		t.Errorf("Call on floor without panel: error = %v, expected ErrNoPanel", err)
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	cfg := config.Default()
	cfg.Cars = nil
	if _, err := NewBuilding(cfg, timer.NewSimClock()); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("error = %v, expected ErrInvalidConfig", err)
	}
	if _, err := NewBuilding(config.Default(), nil); !errors.Is(err, elev.ErrNilTimeSource) {
		t.Errorf("nil clock: error = %v, expected ErrNilTimeSource", err)
	}
}

func TestCallSendsNearestCar(t *testing.T) {
	b := newBuilding(t, config.Default())

	accepted, err := b.Call(1, types.DirUp)
	if err != nil || !accepted {
		t.Fatalf("Call(1, up) = %t, %v", accepted, err)
	}

	lift1, lift2 := mustCar(t, b, "Lift 1"), mustCar(t, b, "Lift 2")
	if lift1.CurrentFloor().Number != 1 || !lift1.IsDoorOpen() {
		t.Errorf("Lift 1 = %v, expected at 1 with door open", lift1)
	}
	if lift2.CurrentFloor().Number != 3 {
		t.Errorf("Lift 2 moved to %d", lift2.CurrentFloor().Number)
	}
	if b.panel(1).UpButton().IsActive() {
		t.Errorf("up button still lit after arrival")
	}
}

func TestCallRejects(t *testing.T) {
	b := newBuilding(t, config.Default())

	if accepted, err := b.Call(3, types.DirUp); err != nil || accepted {
		t.Errorf("Call(3, up) on top floor = %t, %v, expected ignored", accepted, err)
	}
	if _, err := b.Call(1, types.DirNone); !errors.Is(err, ErrBadDirection) {
		t.Errorf("Call(1, none) error = %v, expected ErrBadDirection", err)
	}
	if _, err := b.Call(7, types.DirUp); !errors.Is(err, ErrNoPanel) {
		t.Errorf("Call(7, up) error = %v, expected ErrNoPanel", err)
	}
}

func TestRequestErrors(t *testing.T) {
	b := newBuilding(t, config.Default())

	if err := b.Request("Lift 9", 1); !errors.Is(err, ErrUnknownCar) {
		t.Errorf("unknown car: error = %v, expected ErrUnknownCar", err)
	}
	if err := b.Request("Lift 1", 1, 42); !errors.Is(err, elev.ErrFloorOutOfRange) {
		t.Errorf("bad floor: error = %v, expected ErrFloorOutOfRange", err)
	}
	if lift1 := mustCar(t, b, "Lift 1"); lift1.CurrentFloor().Number != 0 || lift1.State() != types.Idle {
		t.Errorf("rejected request moved the car: %v", lift1)
	}
}

func TestRequestFromListenerWaitsForCurrentRun(t *testing.T) {
	b := newBuilding(t, config.Default())
	lift1, lift2 := mustCar(t, b, "Lift 1"), mustCar(t, b, "Lift 2")

	requested := false
	lift1.OnFloorChanged(func(types.FloorChanged) {
		if requested {
			return
		}
		requested = true
		if err := b.Request("Lift 2", -1); err != nil {
			t.Errorf("Request() error = %v", err)
		}
		if lift2.CurrentFloor().Number != 3 {
			t.Errorf("Lift 2 moved inside Lift 1's run")
		}
	})

	if _, err := b.Call(1, types.DirUp); err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	if !requested {
		t.Fatalf("Lift 1 never changed floor")
	}
	if lift2.CurrentFloor().Number != -1 {
		t.Errorf("Lift 2 at %d, expected -1 after the queued request", lift2.CurrentFloor().Number)
	}
	if b.sched.Pending() != 0 {
		t.Errorf("scheduler still holds %d items", b.sched.Pending())
	}
}

func TestRunDefaultScenario(t *testing.T) {
	b := newBuilding(t, config.Default())

	if err := b.RunScenario(config.Default().Scenario); err != nil {
		t.Fatalf("RunScenario() error = %v", err)
	}

	status := b.Status()
	if len(status) != 2 {
		t.Fatalf("Status() has %d cars", len(status))
	}
	expected := map[string]int{"Lift 1": -1, "Lift 2": 2}
	for _, s := range status {
		if s.Floor.Number != expected[s.Name] || s.Behaviour != types.DoorOpen {
			t.Errorf("%v, expected floor %d with door open", s, expected[s.Name])
		}
		if len(s.Pending) != 0 {
			t.Errorf("%s still has pending floors %v", s.Name, s.Pending)
		}
	}
}

func TestRunScenarioStopsAtBadStep(t *testing.T) {
	b := newBuilding(t, config.Default())
	steps := []config.Step{
		{Floor: 2, Dir: "up"},
		{Floor: 9, Dir: "down"},
		{Car: "Lift 1", Floors: []int{3}},
	}

	if err := b.RunScenario(steps); !errors.Is(err, ErrNoPanel) {
		t.Fatalf("RunScenario() error = %v, expected ErrNoPanel", err)
	}
	if lift1 := mustCar(t, b, "Lift 1"); lift1.CurrentFloor().Number == 3 {
		t.Errorf("step after the failure ran")
	}
}

func TestCloseDetachesPanels(t *testing.T) {
	b := newBuilding(t, config.Default())
	b.Close()

	b.Call(1, types.DirUp)

	if !b.panel(1).UpButton().IsActive() {
		t.Errorf("closed panel retired its button")
	}
	if b.Indicators()[0].Up().IsActive() {
		t.Errorf("closed indicator lit")
	}
}
