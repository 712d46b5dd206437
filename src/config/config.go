package config

import "time"

const (
	DoorOpenDuration  = 3 * time.Second
	TravelDuration    = 5 * time.Second
	DefaultNameLength = 6
	DefaultConfigPath = "building.yaml"
	DefaultEnvPath    = ".env"
)
