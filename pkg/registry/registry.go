// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// Find returns the activity registered for taskType.
func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// Validate reports every structural problem in the registry at once.
func (r *ActivityRegistry) Validate() []error {
	var problems []error
	ids := make(map[string]bool)
	taskTypes := make(map[string]bool)

	for i, a := range r.Activities {
		if a.ID == "" {
			problems = append(problems, fmt.Errorf("activity %d: id is empty", i))
		} else if ids[a.ID] {
			problems = append(problems, fmt.Errorf("activity %s: duplicate id", a.ID))
		}
		ids[a.ID] = true

		if a.TaskType == "" {
			problems = append(problems, fmt.Errorf("activity %s: taskType is empty", a.ID))
		} else if taskTypes[a.TaskType] {
			problems = append(problems, fmt.Errorf("activity %s: duplicate taskType %s", a.ID, a.TaskType))
		}
		taskTypes[a.TaskType] = true

		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				problems = append(problems, fmt.Errorf("activity %s: invalid timeout %q", a.ID, a.Timeout))
			}
		}
		if a.Retries < 0 {
			problems = append(problems, fmt.Errorf("activity %s: retries must not be negative", a.ID))
		}
	}
	return problems
}

// TimeoutDuration parses Timeout, returning zero when it is unset or invalid.
func (a *Activity) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 0
	}
	return d
}
