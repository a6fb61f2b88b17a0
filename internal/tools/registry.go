package tools

import (
	"sort"
)

// ToolSpec is the machine-readable descriptor for a registered tool
type ToolSpec struct {
	Type     string `json:"type"`
	Function struct {
		Name        string         `json:"name"`
		Description string         `json:"description"`
		Parameters  map[string]any `json:"parameters"`
	} `json:"function"`
}

// Registry manages enabled tools
type Registry struct {
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Enable adds a tool to the registry (makes it available for use)
func (r *Registry) Enable(t Tool) {
	r.tools[t.Name()] = t
}

// Disable removes a tool from the registry
func (r *Registry) Disable(name string) {
	delete(r.tools, name)
}

// Get retrieves a tool by name
func (r *Registry) Get(name string) Tool {
	return r.tools[name]
}

// Specs returns descriptors for all registered tools in deterministic order
func (r *Registry) Specs() []ToolSpec {
	names := r.ListTools()

	specs := make([]ToolSpec, 0, len(names))
	for _, name := range names {
		tool := r.tools[name]
		spec := ToolSpec{
			Type: "function",
		}
		spec.Function.Name = tool.Name()
		spec.Function.Description = tool.Description()
		spec.Function.Parameters = tool.JSONSchema()

		specs = append(specs, spec)
	}

	return specs
}

// All returns all registered tools sorted by category, then declared order
func (r *Registry) All() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		tools = append(tools, t)
	}
	sort.Slice(tools, func(i, j int) bool {
		if tools[i].Category() != tools[j].Category() {
			return tools[i].Category() < tools[j].Category()
		}
		return tools[i].Order() < tools[j].Order()
	})
	return tools
}

// IsEnabled returns true if a tool with the given name is enabled
func (r *Registry) IsEnabled(name string) bool {
	return r.tools[name] != nil
}

// ListTools returns a sorted list of all enabled tool names
func (r *Registry) ListTools() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
