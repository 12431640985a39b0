package sched

import (
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors config.yml
type Config struct {
	TickMS       int   `yaml:"tick_ms"`       // clock step in milliseconds (1 by default)
	ModuleSlots  int   `yaml:"module_slots"`  // number of kernel callback slots (10 by default)
	SchedulerUID uint8 `yaml:"scheduler_uid"` // UID the scheduler reserves for its own services
	ArgCapBytes  int   `yaml:"arg_cap_bytes"` // per-task argument buffer cap
	EventLogCap  int   `yaml:"event_log_cap"` // bounded event log size, 0 = unbounded
	EventLogOn   bool  `yaml:"event_log_on"`  // record events from startup
}

// If the config file is not found, we use default values
func defaultConfig() Config {
	return Config{
		TickMS:       1,
		ModuleSlots:  10,
		SchedulerUID: 7,
		ArgCapBytes:  64,
		EventLogCap:  128,
		EventLogOn:   true,
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	// sanity clamps
	if cfg.TickMS <= 0 {
		cfg.TickMS = 1
	}
	if cfg.ModuleSlots <= 0 {
		cfg.ModuleSlots = 10
	}
	if int(cfg.SchedulerUID) >= cfg.ModuleSlots {
		cfg.SchedulerUID = uint8(cfg.ModuleSlots - 1)
	}
	if cfg.ArgCapBytes <= 0 {
		cfg.ArgCapBytes = 64
	}
	if cfg.EventLogCap < 0 {
		cfg.EventLogCap = 0
	}

	return cfg
}
