package executor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the file form of Options.
//
//	wake: eager          # eager | notify
//	idle: spin           # spin | sleep
//	idle_interval: 1ms
//	queued_guard: false
//	isolate_panics: false
//	log: none            # none | stderr
type Config struct {
	Wake          string        `yaml:"wake"`
	Idle          string        `yaml:"idle"`
	IdleInterval  time.Duration `yaml:"idle_interval"`
	QueuedGuard   bool          `yaml:"queued_guard"`
	IsolatePanics bool          `yaml:"isolate_panics"`
	Log           string        `yaml:"log"`
}

// ParseConfig decodes and validates a YAML payload. An empty payload yields
// the zero Config, which maps to the default options.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("executor: decode config: %w", err)
	}
	if _, err := cfg.Options(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("executor: read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("executor: %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the config into runtime options.
func (c Config) Options() ([]Option, error) {
	var opts []Option
	switch strings.ToLower(strings.TrimSpace(c.Wake)) {
	case "", "eager":
	case "notify":
		opts = append(opts, WithWakePolicy(NotifyOnWake))
	default:
		return nil, fmt.Errorf("executor: unknown wake policy %q", c.Wake)
	}
	switch strings.ToLower(strings.TrimSpace(c.Idle)) {
	case "", "spin":
	case "sleep":
		opts = append(opts, WithIdle(SleepIdle))
	default:
		return nil, fmt.Errorf("executor: unknown idle strategy %q", c.Idle)
	}
	if c.IdleInterval < 0 {
		return nil, fmt.Errorf("executor: negative idle_interval %s", c.IdleInterval)
	}
	if c.IdleInterval > 0 {
		opts = append(opts, WithIdleInterval(c.IdleInterval))
	}
	if c.QueuedGuard {
		opts = append(opts, WithQueuedGuard(true))
	}
	switch strings.ToLower(strings.TrimSpace(c.Log)) {
	case "", "none":
	case "stderr":
		opts = append(opts, WithLogger(NewDefaultLogger()))
	default:
		return nil, fmt.Errorf("executor: unknown log target %q", c.Log)
	}
	if c.IsolatePanics {
		// the runtime already logs the recovered value
		opts = append(opts, WithPanicHandler(func(TaskID, any) {}))
	}
	return opts, nil
}
