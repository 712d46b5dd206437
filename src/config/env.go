package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvLogLevel  = "LIFTSIM_LOG_LEVEL"
	EnvLogFile   = "LIFTSIM_LOG_FILE"
	EnvTimeScale = "LIFTSIM_TIME_SCALE"
)

// Env holds runtime overrides read from a .env file and the process environment.
type Env struct {
	LogLevel  slog.Level
	LogFile   bool
	TimeScale float64
}

func DefaultEnv() Env {
	return Env{LogLevel: slog.LevelInfo, TimeScale: 1}
}

// LoadEnv reads path (a missing file is not an error); process environment
// variables win over file values.
func LoadEnv(path string) (Env, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("read %s: %w", path, err)
		}
		values = map[string]string{}
	}
	for _, key := range []string{EnvLogLevel, EnvLogFile, EnvTimeScale} {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}
	return ParseEnv(values)
}

func ParseEnv(values map[string]string) (Env, error) {
	env := DefaultEnv()
	if v := values[EnvLogLevel]; v != "" {
		if err := env.LogLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return Env{}, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvLogLevel, v)
		}
	}
	if v := values[EnvLogFile]; v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Env{}, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvLogFile, v)
		}
		env.LogFile = b
	}
	if v := values[EnvTimeScale]; v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return Env{}, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvTimeScale, v)
		}
		env.TimeScale = f
	}
	return env, nil
}
