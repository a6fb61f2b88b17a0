package tools

import (
	"testing"
)

func TestRegistry_EnableAndGet(t *testing.T) {
	registry := NewRegistry()
	tool := NewReplaceTool(newTestConfig(t.TempDir()))

	registry.Enable(tool)

	retrieved := registry.Get("Replace")
	if retrieved == nil {
		t.Fatal("Expected to retrieve enabled tool")
	}
	if retrieved.Name() != "Replace" {
		t.Errorf("Expected tool name 'Replace', got '%s'", retrieved.Name())
	}
	if !registry.IsEnabled("Replace") {
		t.Error("Expected tool to be enabled")
	}
}

func TestRegistry_GetNonExistent(t *testing.T) {
	registry := NewRegistry()

	if registry.Get("nonexistent") != nil {
		t.Error("Expected nil for non-existent tool")
	}
	if registry.IsEnabled("nonexistent") {
		t.Error("Expected non-existent tool to be disabled")
	}
}

func TestRegistry_Disable(t *testing.T) {
	registry := NewRegistry()
	registry.Enable(NewReplaceTool(newTestConfig(t.TempDir())))

	registry.Disable("Replace")

	if registry.Get("Replace") != nil {
		t.Error("Expected nil after disable")
	}
}

func TestRegistry_Specs(t *testing.T) {
	registry := NewRegistry()
	registry.Enable(NewReplaceTool(newTestConfig(t.TempDir())))

	specs := registry.Specs()
	if len(specs) != 1 {
		t.Fatalf("Expected 1 spec, got %d", len(specs))
	}
	if specs[0].Type != "function" {
		t.Errorf("Expected type 'function', got '%s'", specs[0].Type)
	}
	if specs[0].Function.Name != "Replace" {
		t.Errorf("Expected function name 'Replace', got '%s'", specs[0].Function.Name)
	}
	if specs[0].Function.Parameters == nil {
		t.Error("Expected parameters schema")
	}
}

func TestRegistry_All(t *testing.T) {
	registry := NewRegistry()
	registry.Enable(NewReplaceTool(newTestConfig(t.TempDir())))

	all := registry.All()
	if len(all) != 1 {
		t.Errorf("Expected 1 tool, got %d", len(all))
	}
}

func TestRegistry_ListTools(t *testing.T) {
	registry := NewRegistry()
	registry.Enable(NewReplaceTool(newTestConfig(t.TempDir())))

	names := registry.ListTools()
	if len(names) != 1 || names[0] != "Replace" {
		t.Errorf("ListTools() = %v, want [Replace]", names)
	}
}
