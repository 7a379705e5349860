package scenario

import (
	"context"
	"net/url"

	"restecho/internal/client"
	"restecho/internal/logging"
)

// Runner executes a scenario sequentially against one server. A failed
// step is recorded and execution proceeds to the next step regardless;
// there are no retries and no aborts.
type Runner struct {
	client *client.Client
	logger *logging.Logger
}

// NewRunner creates a runner backed by the given client.
func NewRunner(c *client.Client, logger *logging.Logger) *Runner {
	return &Runner{client: c, logger: logger}
}

// StepResult records the outcome of one step. Err is set only for
// transport failures; a status mismatch leaves Err nil.
type StepResult struct {
	Step   Step
	Status int
	Body   []byte
	Err    error
}

// Passed reports whether the step observed its expected status.
func (r StepResult) Passed() bool {
	return r.Err == nil && r.Status == r.Step.Expect
}

// Report collects the results of one scenario run.
type Report struct {
	Scenario string
	Results  []StepResult
}

// Passed returns the number of passing steps.
func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed() {
			n++
		}
	}
	return n
}

// Failed returns the number of failing steps.
func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// OK reports whether every step passed.
func (r *Report) OK() bool {
	return r.Failed() == 0
}

// Run executes every step in order and returns the collected report.
func (r *Runner) Run(ctx context.Context, sc Scenario) *Report {
	report := &Report{Scenario: sc.Name}

	for _, step := range sc.Steps {
		result := r.runStep(ctx, step)
		report.Results = append(report.Results, result)

		switch {
		case result.Err != nil:
			r.logger.Error("Step failed", logging.Fields{
				"scenario": sc.Name,
				"step":     step.Name,
				"method":   step.Method,
				"path":     step.Path,
				"error":    result.Err.Error(),
			})
		case !result.Passed():
			r.logger.Error("Step failed", logging.Fields{
				"scenario": sc.Name,
				"step":     step.Name,
				"method":   step.Method,
				"path":     step.Path,
				"status":   result.Status,
				"expected": step.Expect,
			})
		default:
			r.logger.Info("Step passed", logging.Fields{
				"scenario": sc.Name,
				"step":     step.Name,
				"method":   step.Method,
				"path":     step.Path,
				"status":   result.Status,
			})
		}
	}

	r.logger.Info("Scenario finished", logging.Fields{
		"scenario": sc.Name,
		"passed":   report.Passed(),
		"failed":   report.Failed(),
	})

	return report
}

func (r *Runner) runStep(ctx context.Context, step Step) StepResult {
	var query url.Values
	if len(step.Query) > 0 {
		query = url.Values{}
		for k, v := range step.Query {
			query.Set(k, v)
		}
	}

	var (
		resp *client.Response
		err  error
	)
	if step.RawBody != "" {
		resp, err = r.client.DoRaw(ctx, step.Method, step.Path, query, []byte(step.RawBody))
	} else if step.Body != nil {
		resp, err = r.client.Do(ctx, step.Method, step.Path, query, step.Body)
	} else {
		resp, err = r.client.Do(ctx, step.Method, step.Path, query, nil)
	}

	if err != nil {
		return StepResult{Step: step, Err: err}
	}

	return StepResult{Step: step, Status: resp.StatusCode, Body: resp.Body}
}
