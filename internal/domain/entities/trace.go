package entities

// Trace is the ordered, human-readable record of one pipeline run. It is
// created per query, returned to the caller alongside the answer, and never
// persisted by the core.
type Trace struct {
	Query       string     `json:"query"`
	SessionID   string     `json:"session_id"`
	Intent      IntentType `json:"intent"`
	Steps       []string   `json:"steps"`
	AgentsUsed  []string   `json:"agents_used"`
	FinalAnswer string     `json:"final_answer"`
	Success     bool       `json:"success"`
}

// AddStep appends a step description to the trace
func (t *Trace) AddStep(step string) {
	t.Steps = append(t.Steps, step)
}

// AddAgent records a specialist invocation
func (t *Trace) AddAgent(name string) {
	t.AgentsUsed = append(t.AgentsUsed, name)
}
