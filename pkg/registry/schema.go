// pkg/registry/schema.go
package registry

// ActivityRegistry describes the service tasks this repo implements, for
// process modellers and for worker defaults.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Version     string `json:"version"`
	TaskType    string `json:"taskType"`

	// InputVariables and OutputVariables name the process variables read and
	// written by the worker.
	InputVariables  []string `json:"inputVariables"`
	OutputVariables []string `json:"outputVariables"`
	ErrorCodes      []string `json:"errorCodes"`

	// Timeout and Retries are used when the worker config leaves them unset.
	Timeout string `json:"timeout"`
	Retries int    `json:"retries"`

	Workflows []string `json:"workflows"`
	Tags      []string `json:"tags"`
}
