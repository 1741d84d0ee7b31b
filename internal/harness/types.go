package harness

// TraceEvent is one entry of a scenario's execution trace.
type TraceEvent struct {
	// Type is "run_started", "winner", "absence", or "run_recorded".
	Type string `json:"type"`

	// Seq is the logical clock value for the event.
	Seq int64 `json:"seq"`

	// Detail carries event-specific fields (problem name, goal value,
	// winning assignment, verdicts).
	Detail map[string]any `json:"detail,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every expect field matched.
	Pass bool `json:"pass"`

	// RunToken identifies the recorded run.
	RunToken string `json:"run_token"`

	// Found reports whether the search produced a valid candidate.
	Found bool `json:"found"`

	// Goal is the winner's goal value. Zero when Found is false.
	Goal float64 `json:"goal"`

	// Solution is the winning assignment. Nil when Found is false.
	Solution map[string]int `json:"solution,omitempty"`

	// Verdicts are the winner's per-constraint outcomes in
	// declaration order. Nil when Found is false.
	Verdicts []bool `json:"verdicts,omitempty"`

	// Trace contains run events in logical clock order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(runToken string) *Result {
	return &Result{
		Pass:     true,
		RunToken: runToken,
		Trace:    []TraceEvent{},
		Errors:   []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event to the trace.
func (r *Result) AddTrace(eventType string, seq int64, detail map[string]any) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:   eventType,
		Seq:    seq,
		Detail: detail,
	})
}
