package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"liftsim/src/config"
	"liftsim/src/sim"
	"liftsim/src/timer"
	"liftsim/src/types"
	"liftsim/src/utils"

	"github.com/eiannone/keyboard"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Building description (YAML)")
	envPath := flag.String("env", config.DefaultEnvPath, "Optional .env file with LIFTSIM_* overrides")
	interactive := flag.Bool("interactive", false, "Press call panel buttons from the keyboard")
	flag.Parse()

	env, err := config.LoadEnv(*envPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	utils.InitLogger("liftsim", env.LogLevel, env.LogFile)

	cfg, err := config.Load(*configPath)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("No building file, using default building", "path", *configPath)
		cfg, err = config.Default(), nil
	}
	if err != nil {
		slog.Error("Loading building failed", "err", err)
		os.Exit(1)
	}

	building, err := sim.NewBuilding(cfg, timer.Clock{Scale: env.TimeScale})
	if err != nil {
		slog.Error("Building setup failed", "err", err)
		os.Exit(1)
	}
	defer building.Close()

	if err := building.RunScenario(cfg.Scenario); err != nil {
		slog.Error("Scenario failed", "err", err)
	}
	utils.PrintStatus(os.Stdout, building.Status())

	if *interactive {
		runInteractive(building)
	}
}

// runInteractive reads single keys until q or Ctrl-C: a digit selects the
// n-th panel from the bottom, u and d press its buttons, s prints status.
func runInteractive(building *sim.Building) {
	panels := building.Panels()
	selected := 0
	fmt.Println("0-9 select panel, u/d call, s status, q quit")
	for {
		char, key, err := keyboard.GetSingleKey()
		if err != nil {
			slog.Error("Reading keyboard failed", "err", err)
			return
		}
		if key == keyboard.KeyCtrlC || char == 'q' || char == 'Q' {
			fmt.Println("Exit")
			return
		}

		switch {
		case char >= '0' && char <= '9':
			idx := int(char - '0')
			if idx >= len(panels) {
				fmt.Printf("No panel %d, building has %d\n", idx, len(panels))
				continue
			}
			selected = idx
			fmt.Println(panels[selected])
		case char == 'u' || char == 'U' || char == 'd' || char == 'D':
			dir := types.DirUp
			if char == 'd' || char == 'D' {
				dir = types.DirDown
			}
			floor := panels[selected].CallingFloor().Number
			accepted, err := building.Call(floor, dir)
			if err != nil {
				slog.Error("Call failed", "floor", floor, "err", err)
			} else if !accepted {
				fmt.Printf("%v button disabled or already lit on floor %d\n", dir, floor)
			}
		case char == 's' || char == 'S':
			utils.PrintStatus(os.Stdout, building.Status())
		}
	}
}
