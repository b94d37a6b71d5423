package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PromptManager assembles persona system prompts from markdown files
// in a prompt directory. A persona prompt is the shared preamble (if
// present) followed by the persona's own file.
type PromptManager struct {
	Directory string
}

func NewPromptManager(dir string) *PromptManager {
	return &PromptManager{Directory: dir}
}

// GetPersonaPrompt returns the assembled system prompt for a persona.
// The persona file ("planner.md", "analyst.md") is required; the
// shared preamble ("shared.md") is optional.
func (pm *PromptManager) GetPersonaPrompt(persona string) (string, error) {
	var parts []string

	sharedPath := filepath.Join(pm.Directory, "shared.md")
	if data, err := os.ReadFile(sharedPath); err == nil {
		parts = append(parts, strings.TrimSpace(string(data)))
	}

	personaPath := filepath.Join(pm.Directory, persona+".md")
	data, err := os.ReadFile(personaPath)
	if err != nil {
		return "", fmt.Errorf("failed to read persona prompt %s: %w", personaPath, err)
	}
	parts = append(parts, strings.TrimSpace(string(data)))

	return strings.Join(parts, "\n\n---\n\n"), nil
}
