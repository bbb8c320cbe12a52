package agentModel

// Source is the fetch path chosen by the router for one turn.
type Source string

const (
	SourceWeather  Source = "weather"
	SourceDocument Source = "document"
)

// TurnState is the ephemeral state of a single question/answer cycle.
// Source and Context are each set exactly once before generation runs.
type TurnState struct {
	Question string
	Source   Source
	Context  []string
	Answer   string
}

// Step names emitted while a turn moves through the pipeline.
const (
	StepRouter   = "router"
	StepWeather  = "weather"
	StepRag      = "rag"
	StepGenerate = "generate"
)

// StepEvent is an observability record streamed to the caller as the
// pipeline advances. Consumers may render or discard them.
type StepEvent struct {
	Node      string   `json:"node"`
	SessionId string   `json:"session_id,omitempty"`
	Source    Source   `json:"source,omitempty"`
	Context   []string `json:"context,omitempty"`
	Answer    string   `json:"answer,omitempty"`
}
