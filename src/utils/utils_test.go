package utils

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"liftsim/src/elev"
	"liftsim/src/types"
)

func TestShortAttrs(t *testing.T) {
	ts := time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC)
	if got := shortAttrs(nil, slog.Time(slog.TimeKey, ts)).Value.String(); got != "13:04:05" {
		t.Errorf("time = %q, expected 13:04:05", got)
	}

	src := &slog.Source{File: "/home/lift/src/elev/fsm.go", Line: 42}
	if got := shortAttrs(nil, slog.Any(slog.SourceKey, src)).Value.String(); got != "fsm.go:42" {
		t.Errorf("source = %q, expected fsm.go:42", got)
	}

	if got := shortAttrs(nil, slog.Int("floor", 3)).Value.Int64(); got != 3 {
		t.Errorf("other attrs changed: %d", got)
	}
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintStatus(&buf, []elev.CarStatus{
		{Name: "Lift 1", Floor: types.Floor{Number: 2, Label: "2nd floor"}, Behaviour: types.DoorOpen},
		{Name: "Lift 2", Floor: types.Floor{Number: -1, Label: "Basement"}, Behaviour: types.Moving, Dir: types.DirUp,
			Pending: []types.Floor{{Number: 3}}},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("printed %d lines, expected 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "Lift 1") || !strings.Contains(lines[0], "2 - 2nd floor") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Basement") || !strings.Contains(lines[1], "pending 1") {
		t.Errorf("line 1 = %q", lines[1])
	}
}
