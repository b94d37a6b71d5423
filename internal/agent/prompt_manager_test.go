package agent

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPromptManager_GetPersonaPrompt(t *testing.T) {
	tempDir := t.TempDir()

	files := map[string]string{
		"shared.md":  "Shared Content",
		"planner.md": "Planner Content",
		"analyst.md": "Analyst Content",
	}

	for name, content := range files {
		err := os.WriteFile(filepath.Join(tempDir, name), []byte(content), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}

	pm := NewPromptManager(tempDir)

	prompt, err := pm.GetPersonaPrompt("planner")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(prompt, "Shared Content") {
		t.Error("Prompt missing shared preamble")
	}
	if !strings.Contains(prompt, "Planner Content") {
		t.Error("Prompt missing persona content")
	}
	if strings.Contains(prompt, "Analyst Content") {
		t.Error("Prompt should not include other persona content")
	}

	// Shared preamble comes first
	if strings.Index(prompt, "Shared Content") >= strings.Index(prompt, "Planner Content") {
		t.Error("Shared preamble should be before persona content")
	}
}

func TestPromptManager_MissingShared(t *testing.T) {
	tempDir := t.TempDir()

	err := os.WriteFile(filepath.Join(tempDir, "analyst.md"), []byte("Analyst Content"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	pm := NewPromptManager(tempDir)
	prompt, err := pm.GetPersonaPrompt("analyst")
	if err != nil {
		t.Fatal(err)
	}
	if prompt != "Analyst Content" {
		t.Errorf("Expected bare persona content, got %q", prompt)
	}
}

func TestPromptManager_MissingPersona(t *testing.T) {
	pm := NewPromptManager(t.TempDir())
	if _, err := pm.GetPersonaPrompt("planner"); err == nil {
		t.Error("Expected error for missing persona file")
	}
}

func TestExtractPayload(t *testing.T) {
	fenced := "Here is your plan:\n```json\n{\"duration_minutes\": 30}\n```\nEnjoy!"
	payload := extractPayload(fenced)
	if payload == nil {
		t.Fatal("Expected payload from fenced block")
	}
	if payload["duration_minutes"] != float64(30) {
		t.Errorf("Unexpected payload: %v", payload)
	}

	bare := `The plan {"duration_minutes": 28, "days": []} should work.`
	payload = extractPayload(bare)
	if payload == nil {
		t.Fatal("Expected payload from bare braces")
	}
	if payload["duration_minutes"] != float64(28) {
		t.Errorf("Unexpected payload: %v", payload)
	}

	if extractPayload("No structured data here.") != nil {
		t.Error("Expected nil payload for plain text")
	}
	if extractPayload("broken {not json}") != nil {
		t.Error("Expected nil payload for invalid JSON")
	}
}
