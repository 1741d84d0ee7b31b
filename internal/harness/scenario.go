package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tmarden/sift/internal/store"
)

// Scenario defines a conformance test scenario.
// A scenario runs one seeded search over a CUE problem definition and
// asserts on the outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Problem is the path to the CUE problem definition.
	// Relative paths resolve against the scenario file location.
	Problem string `yaml:"problem"`

	// Mode selects the engine entry point: "sequential" or "parallel".
	Mode string `yaml:"mode"`

	// Samples is the batch size (sequential) or per-worker sample
	// count (parallel).
	Samples int `yaml:"samples"`

	// Workers is the worker count for parallel runs.
	Workers int `yaml:"workers,omitempty"`

	// Seed fixes the random stream so runs are reproducible.
	Seed int64 `yaml:"seed"`

	// RunToken is an optional fixed run token for deterministic tests.
	// If empty, defaults to "scenario-run" for golden file comparison.
	RunToken string `yaml:"run_token,omitempty"`

	// Expect validates the run outcome. Omitted fields are not checked.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected run outcome.
// All fields are optional; nil/omitted fields are skipped.
type ExpectClause struct {
	// Found asserts whether a valid candidate was expected at all.
	Found *bool `yaml:"found,omitempty"`

	// MinGoal asserts a lower bound on the winner's goal value.
	MinGoal *float64 `yaml:"min_goal,omitempty"`

	// Solution asserts exact values for named variables.
	// Subset match - only listed variables are checked.
	Solution map[string]int `yaml:"solution,omitempty"`

	// Verdicts asserts the winner's per-constraint outcomes in
	// declaration order. Must match exactly when present.
	Verdicts []bool `yaml:"verdicts,omitempty"`
}

// DefaultRunToken is used when a scenario omits run_token.
const DefaultRunToken = "scenario-run"

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// The problem path is resolved relative to the scenario file.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving the problem path relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Problem != "" && !filepath.IsAbs(scenario.Problem) && basePath != "" {
		scenario.Problem = filepath.Join(basePath, scenario.Problem)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Problem == "" {
		return fmt.Errorf("problem is required")
	}
	if _, err := os.Stat(s.Problem); os.IsNotExist(err) {
		return fmt.Errorf("problem file not found: %s", s.Problem)
	}

	switch s.Mode {
	case store.ModeSequential:
		if s.Workers != 0 {
			return fmt.Errorf("workers is only valid for parallel mode")
		}
	case store.ModeParallel:
		if s.Workers <= 0 {
			return fmt.Errorf("workers must be positive for parallel mode")
		}
	default:
		return fmt.Errorf("unknown mode %q (want %q or %q)", s.Mode, store.ModeSequential, store.ModeParallel)
	}

	if s.Samples < 0 {
		return fmt.Errorf("samples must be non-negative")
	}

	return nil
}
