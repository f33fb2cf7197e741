package meta

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGame   = "tictactoe"
	DefaultGames  = 10
	DefaultOutDir = "experiments/results"
)

// Games the harness knows how to set up
var Games = []string{"tictactoe", "uttt"}

// Rollout policies
const (
	PolicyRandom    = "random"
	PolicyHeuristic = "heuristic"
)

// Heuristic tie-breaks
const (
	TieRandom = "random"
	TieFirst  = "first"
)

type AgentConfig struct {
	ID          int     `yaml:"id"`
	Name        string  `yaml:"name"`
	Iterations  int     `yaml:"iterations"`
	Exploration float64 `yaml:"exploration"`
	Policy      string  `yaml:"policy"`
	Tiebreak    string  `yaml:"tiebreak"`
	Goroutines  int     `yaml:"goroutines"`
	Seed        uint64  `yaml:"seed"`        // 0 seeds from the clock
	Temperature float64 `yaml:"temperature"` // > 0 samples moves from the root visits
}

var agentKeys = map[string]bool{
	"id": true, "name": true, "iterations": true, "exploration": true, "policy": true,
	"tiebreak": true, "goroutines": true, "seed": true, "temperature": true,
}

// UnmarshalYAML fills the fields missing from the file with the Vanilla values
func (a *AgentConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		for i := 0; i < len(value.Content); i += 2 {
			key := value.Content[i]
			if !agentKeys[key.Value] {
				return fmt.Errorf("line %d: field %s not found in agent", key.Line, key.Value)
			}
		}
	}

	type plain AgentConfig
	defaults := Vanilla()
	defaults.ID, defaults.Name = 0, ""
	p := plain(defaults)
	if err := value.Decode(&p); err != nil {
		return err
	}
	*a = AgentConfig(p)
	return nil
}

type Config struct {
	Game   string        `yaml:"game"`
	Games  int           `yaml:"games"` // Per match up
	OutDir string        `yaml:"out_dir"`
	Agents []AgentConfig `yaml:"agents"`
}

// Vanilla is the 50 iteration searcher with random rollouts
func Vanilla() AgentConfig {
	return AgentConfig{
		ID:          1,
		Name:        "vanilla",
		Iterations:  50,
		Exploration: 2.0,
		Policy:      PolicyRandom,
		Tiebreak:    TieRandom,
		Goroutines:  1,
	}
}

// Modified is the 1000 iteration searcher with heuristic rollouts
func Modified() AgentConfig {
	return AgentConfig{
		ID:          2,
		Name:        "modified",
		Iterations:  1000,
		Exploration: 2.0,
		Policy:      PolicyHeuristic,
		Tiebreak:    TieRandom,
		Goroutines:  1,
	}
}

func Default() Config {
	return Config{
		Game:   DefaultGame,
		Games:  DefaultGames,
		OutDir: DefaultOutDir,
		Agents: []AgentConfig{Vanilla(), Modified()},
	}
}

// Load reads a YAML config on top of the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	known := false
	for _, g := range Games {
		if c.Game == g {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("unknown game %q", c.Game)
	}
	if c.Games < 1 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if len(c.Agents) < 2 {
		return fmt.Errorf("need at least two agents, got %d", len(c.Agents))
	}

	ids := make(map[int]bool, len(c.Agents))
	for _, a := range c.Agents {
		if ids[a.ID] {
			return fmt.Errorf("duplicate agent id %d", a.ID)
		}
		ids[a.ID] = true
		if err := a.Validate(); err != nil {
			return fmt.Errorf("agent %d: %w", a.ID, err)
		}
	}
	return nil
}

func (a AgentConfig) Validate() error {
	switch {
	case a.Iterations < 1:
		return fmt.Errorf("iterations must be positive, got %d", a.Iterations)
	case a.Exploration < 0:
		return fmt.Errorf("exploration must not be negative, got %v", a.Exploration)
	case a.Goroutines < 1:
		return fmt.Errorf("goroutines must be positive, got %d", a.Goroutines)
	case a.Temperature < 0:
		return fmt.Errorf("temperature must not be negative, got %v", a.Temperature)
	}
	if a.Policy != PolicyRandom && a.Policy != PolicyHeuristic {
		return fmt.Errorf("unknown policy %q", a.Policy)
	}
	if a.Tiebreak != TieRandom && a.Tiebreak != TieFirst {
		return fmt.Errorf("unknown tiebreak %q", a.Tiebreak)
	}
	return nil
}
