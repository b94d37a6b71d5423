// Package tools holds the coaching capabilities the persona agents can
// invoke: plan validation, progress checks, and the workout history.
package tools

import (
	"context"
)

// Tool is a single capability exposed to the agents. Execute receives
// the model's arguments as a JSON string and returns the observation
// text fed back into the reasoning loop.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any // JSON Schema for the tool's inputs
	Execute(ctx context.Context, input string) (string, error)
}

// Registry manages the set of available tools.
type Registry struct {
	Tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{
		Tools: make(map[string]Tool),
	}
}

func (r *Registry) Register(t Tool) {
	r.Tools[t.Name()] = t
}

// Get returns nil when no tool is registered under the name.
func (r *Registry) Get(name string) Tool {
	return r.Tools[name]
}
