// Package intent reads and writes the intent registry: the structured
// text file that declares which business objectives the agent may work
// on and which paths each one is authorized to touch.
package intent

// Status is the lifecycle state of an intent.
type Status string

const (
	StatusTODO       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// Intent is a declared business objective that scopes a block of agent
// work. IntentId is unique within the registry.
type Intent struct {
	ID                 string   `yaml:"id"`
	Name               string   `yaml:"name"`
	Status             Status   `yaml:"status"`
	Constraints        []string `yaml:"constraints,omitempty"`
	OwnedScope         []string `yaml:"owned_scope,omitempty"`
	AcceptanceCriteria []string `yaml:"acceptance_criteria,omitempty"`
}
