package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid building config")

type FloorSpec struct {
	Number int    `yaml:"number"`
	Label  string `yaml:"label"`
}

type CarSpec struct {
	Name       string `yaml:"name"`
	StartFloor int    `yaml:"start_floor"`
}

// PanelSpec places a call panel on a floor. Option is one of "up", "down"
// or "both"; empty derives it from the floor's position in the building.
type PanelSpec struct {
	Floor  int    `yaml:"floor"`
	Option string `yaml:"option"`
}

// Step is one scripted action: either a panel call (Floor + Dir) or a cab
// request (Car + Floors).
type Step struct {
	Floor  int    `yaml:"floor"`
	Dir    string `yaml:"dir"`
	Car    string `yaml:"car"`
	Floors []int  `yaml:"floors"`
}

type Building struct {
	Floors   []FloorSpec `yaml:"floors"`
	Cars     []CarSpec   `yaml:"cars"`
	Panels   []PanelSpec `yaml:"panels"`
	Scenario []Step      `yaml:"scenario"`
}

// Default is the five-floor, two-car building used when no file is given.
func Default() Building {
	return Building{
		Floors: []FloorSpec{
			{Number: -1, Label: "Basement"},
			{Number: 0, Label: "Ground floor"},
			{Number: 1, Label: "1st floor"},
			{Number: 2, Label: "2nd floor"},
			{Number: 3, Label: "3rd floor"},
		},
		Cars: []CarSpec{
			{Name: "Lift 1", StartFloor: 0},
			{Name: "Lift 2", StartFloor: 3},
		},
		Scenario: []Step{
			{Floor: 1, Dir: "up"},
			{Car: "Lift 1", Floors: []int{3, -1}},
			{Floor: 2, Dir: "down"},
		},
	}
}

func Load(path string) (Building, error) {
	file, err := os.Open(path)
	if err != nil {
		return Building{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return Parse(file)
}

func Parse(r io.Reader) (Building, error) {
	var b Building
	if err := yaml.NewDecoder(r).Decode(&b); err != nil {
		return Building{}, fmt.Errorf("decode building: %w", err)
	}
	if err := b.Validate(); err != nil {
		return Building{}, err
	}
	return b, nil
}

func (b Building) Validate() error {
	if len(b.Floors) == 0 {
		return fmt.Errorf("%w: no floors", ErrInvalidConfig)
	}
	if len(b.Cars) == 0 {
		return fmt.Errorf("%w: no cars", ErrInvalidConfig)
	}
	floors := make(map[int]bool, len(b.Floors))
	for _, f := range b.Floors {
		floors[f.Number] = true
	}
	names := make(map[string]bool, len(b.Cars))
	for _, c := range b.Cars {
		if c.Name != "" && names[c.Name] {
			return fmt.Errorf("%w: duplicate car name %q", ErrInvalidConfig, c.Name)
		}
		names[c.Name] = true
	}
	for _, p := range b.Panels {
		if !floors[p.Floor] {
			return fmt.Errorf("%w: panel on unknown floor %d", ErrInvalidConfig, p.Floor)
		}
		if _, err := ParseOption(p.Option); err != nil {
			return err
		}
	}
	for i, s := range b.Scenario {
		if s.Car == "" {
			if _, err := ParseDir(s.Dir); err != nil {
				return fmt.Errorf("scenario step %d: %w", i, err)
			}
		} else if !names[s.Car] {
			return fmt.Errorf("%w: scenario step %d names unknown car %q", ErrInvalidConfig, i, s.Car)
		}
	}
	return nil
}

// Option names accepted in PanelSpec.
const (
	OptionAuto = ""
	OptionUp   = "up"
	OptionDown = "down"
	OptionBoth = "both"
)

func ParseOption(s string) (string, error) {
	switch o := strings.ToLower(strings.TrimSpace(s)); o {
	case OptionAuto, OptionUp, OptionDown, OptionBoth:
		return o, nil
	}
	return "", fmt.Errorf("%w: unknown panel option %q", ErrInvalidConfig, s)
}

// ParseDir accepts "up"/"u" and "down"/"d". It returns +1 or -1.
func ParseDir(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return 1, nil
	case "down", "d":
		return -1, nil
	}
	return 0, fmt.Errorf("%w: unknown direction %q", ErrInvalidConfig, s)
}
