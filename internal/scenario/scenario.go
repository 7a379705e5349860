// Package scenario models the client call sequence as data: an ordered
// list of HTTP steps with expected status codes, loadable from TOML or
// YAML files.
package scenario

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Step is one call in a scenario.
type Step struct {
	Name   string            `toml:"name" yaml:"name"`
	Method string            `toml:"method" yaml:"method"`
	Path   string            `toml:"path" yaml:"path"`
	Query  map[string]string `toml:"query,omitempty" yaml:"query,omitempty"`

	// Body is a JSON object sent as the request body. RawBody sends
	// arbitrary bytes instead, for steps that exercise the malformed
	// body path. At most one of the two may be set.
	Body    map[string]interface{} `toml:"body,omitempty" yaml:"body,omitempty"`
	RawBody string                 `toml:"raw_body,omitempty" yaml:"raw_body,omitempty"`

	// Expect is the status code the step must observe to pass.
	Expect int `toml:"expect" yaml:"expect"`
}

// Scenario is an ordered, sequential call sequence.
type Scenario struct {
	Name  string `toml:"name" yaml:"name"`
	Steps []Step `toml:"steps" yaml:"steps"`
}

var supportedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

// Validate checks the scenario for steps the runner cannot execute.
func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", s.Name)
	}

	for i, step := range s.Steps {
		if !supportedMethods[step.Method] {
			return fmt.Errorf("step %d (%s): unsupported method %q", i+1, step.Name, step.Method)
		}
		if step.Path == "" || !strings.HasPrefix(step.Path, "/") {
			return fmt.Errorf("step %d (%s): path must start with /", i+1, step.Name)
		}
		if step.Expect < 100 || step.Expect > 599 {
			return fmt.Errorf("step %d (%s): expected status %d out of range", i+1, step.Name, step.Expect)
		}
		if step.Body != nil && step.RawBody != "" {
			return fmt.Errorf("step %d (%s): body and raw_body are mutually exclusive", i+1, step.Name)
		}
	}
	return nil
}

// Default returns the built-in demo sequence: two GET variants, one
// POST, one PUT, one DELETE, one OPTIONS, one PATCH, in that order.
func Default() Scenario {
	return Scenario{
		Name: "demo",
		Steps: []Step{
			{
				Name:   "get data",
				Method: http.MethodGet,
				Path:   "/api/data",
				Query:  map[string]string{"folder": "documents"},
				Expect: http.StatusOK,
			},
			{
				Name:   "get data v2",
				Method: http.MethodGet,
				Path:   "/api/v2/data",
				Query:  map[string]string{"folder": "photos"},
				Expect: http.StatusOK,
			},
			{
				Name:   "create data",
				Method: http.MethodPost,
				Path:   "/api/data",
				Body:   map[string]interface{}{"name": "Alice", "age": 30},
				Expect: http.StatusCreated,
			},
			{
				Name:   "update data",
				Method: http.MethodPut,
				Path:   "/api/data/1",
				Body:   map[string]interface{}{"key": "updated_value"},
				Expect: http.StatusOK,
			},
			{
				Name:   "delete data",
				Method: http.MethodDelete,
				Path:   "/api/data/1",
				Expect: http.StatusOK,
			},
			{
				Name:   "preflight",
				Method: http.MethodOptions,
				Path:   "/api/data",
				Expect: http.StatusNoContent,
			},
			{
				Name:   "patch data",
				Method: http.MethodPatch,
				Path:   "/api/data/1",
				Body:   map[string]interface{}{"key": "patched_value"},
				Expect: http.StatusOK,
			},
		},
	}
}

// Load reads a scenario from a TOML or YAML file, switched on the
// file extension.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}

	var sc Scenario
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &sc); err != nil {
			return Scenario{}, fmt.Errorf("parse TOML scenario: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return Scenario{}, fmt.Errorf("parse YAML scenario: %w", err)
		}
	default:
		return Scenario{}, fmt.Errorf("unsupported scenario format %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}

	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}

	return sc, nil
}
