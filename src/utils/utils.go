package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"liftsim/src/elev"
)

// InitLogger installs the default slog handler. With withFile the log also
// goes to <name>.log, truncated on start.
func InitLogger(name string, level slog.Level, withFile bool) {
	var out io.Writer = os.Stdout
	if withFile {
		logFile, err := os.OpenFile(name+".log", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			panic(err)
		}
		out = io.MultiWriter(os.Stdout, logFile)
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:       level,
		AddSource:   true,
		ReplaceAttr: shortAttrs,
	})
	slog.SetDefault(slog.New(handler))
}

// shortAttrs prints time as HH:MM:SS and source as file:line.
func shortAttrs(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.Format("15:04:05"))
		}
	}
	if a.Key == slog.SourceKey {
		if source, ok := a.Value.Any().(*slog.Source); ok {
			file := source.File
			if lastSlash := strings.LastIndexByte(file, '/'); lastSlash >= 0 {
				file = file[lastSlash+1:]
			}
			a.Value = slog.StringValue(fmt.Sprintf("%s:%d", file, source.Line))
		}
	}
	return a
}

// PrintStatus writes one line per car.
func PrintStatus(w io.Writer, statuses []elev.CarStatus) {
	for _, s := range statuses {
		fmt.Fprintf(w, "%-10s | %-18s | %-8s | %-4s | pending %d\n",
			s.Name, s.Floor, s.Behaviour, s.Dir, len(s.Pending))
	}
}
