package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rahul/coachd/internal/governance"
	"github.com/rahul/coachd/internal/observability"
	"github.com/rahul/coachd/internal/tools"
	"github.com/rahul/coachd/internal/validation"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// Persona identifiers. Each persona has its own prompt file and its
// own slice of conversation memory.
const (
	PersonaPlanner = "planner"
	PersonaAnalyst = "analyst"
)

// Reply is the outcome of one persona turn. When the persona produced
// a structured payload, it is extracted and validated before the reply
// is returned; the validation outcome rides along so callers never see
// an unchecked payload.
type Reply struct {
	Text       string             `json:"text"`
	Payload    map[string]any     `json:"payload,omitempty"`
	Validation *validation.Result `json:"validation,omitempty"`
}

// Brain defines the core intelligence interface for a persona agent.
type Brain interface {
	Think(ctx context.Context, sessionID string, input string) (*Reply, error)
}

// MemoryStore is the slice of conversation persistence the brain needs.
type MemoryStore interface {
	AddMessage(sessionID, persona, role, content string) error
	GetHistory(sessionID, persona string, limit int) ([]llms.MessageContent, error)
}

// PersonaBrain is a tool-calling agent bound to one persona. Every
// tool invocation is screened by the policy engine and audit-logged;
// a structured payload in the final answer is routed through the
// validation dispatcher.
type PersonaBrain struct {
	Persona    string
	Role       observability.Role
	Model      llms.Model
	Registry   *tools.Registry
	Memory     MemoryStore
	Prompts    *PromptManager
	Policy     governance.PolicyEngine
	Dispatcher *validation.Dispatcher
	Metrics    *validation.Metrics
	Audit      *observability.AuditLogger
	Log        *zap.SugaredLogger

	// MaxSteps bounds the reasoning loop. Zero means the default.
	MaxSteps int
}

const defaultMaxSteps = 10

// NewPlannerBrain builds the workout-plan generator persona.
func NewPlannerBrain(model llms.Model, registry *tools.Registry, mem MemoryStore, prompts *PromptManager, policy governance.PolicyEngine, dispatcher *validation.Dispatcher, metrics *validation.Metrics, audit *observability.AuditLogger, log *zap.SugaredLogger) *PersonaBrain {
	return &PersonaBrain{
		Persona:    PersonaPlanner,
		Role:       observability.RolePlanner,
		Model:      model,
		Registry:   registry,
		Memory:     mem,
		Prompts:    prompts,
		Policy:     policy,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Audit:      audit,
		Log:        log,
	}
}

// NewAnalystBrain builds the progress-analysis persona.
func NewAnalystBrain(model llms.Model, registry *tools.Registry, mem MemoryStore, prompts *PromptManager, policy governance.PolicyEngine, dispatcher *validation.Dispatcher, metrics *validation.Metrics, audit *observability.AuditLogger, log *zap.SugaredLogger) *PersonaBrain {
	return &PersonaBrain{
		Persona:    PersonaAnalyst,
		Role:       observability.RoleAnalyst,
		Model:      model,
		Registry:   registry,
		Memory:     mem,
		Prompts:    prompts,
		Policy:     policy,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Audit:      audit,
		Log:        log,
	}
}

func (b *PersonaBrain) Think(ctx context.Context, sessionID string, input string) (*Reply, error) {
	observability.SetStatus(b.Role, input)
	defer observability.SetStatus(observability.RoleIdle, "")

	systemPrompt, err := b.Prompts.GetPersonaPrompt(b.Persona)
	if err != nil {
		return nil, fmt.Errorf("failed to load persona prompt: %w", err)
	}

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
	}

	history, err := b.Memory.GetHistory(sessionID, b.Persona, 5)
	if err != nil {
		b.Log.Warnw("failed to load conversation history", "session", sessionID, "error", err)
	}
	messages = append(messages, history...)

	messages = append(messages, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(input)},
	})

	var llmTools []llms.Tool
	for _, t := range b.Registry.Tools {
		llmTools = append(llmTools, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}

	maxSteps := b.MaxSteps
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}

	var finalResponse string
	for i := 0; i < maxSteps; i++ {
		resp, err := b.Model.GenerateContent(ctx, messages, llms.WithTools(llmTools))
		if err != nil {
			return nil, err
		}

		choice := resp.Choices[0]

		var assistantParts []llms.ContentPart
		if choice.Content != "" {
			assistantParts = append(assistantParts, llms.TextContent{Text: choice.Content})
		}
		for _, tc := range choice.ToolCalls {
			assistantParts = append(assistantParts, tc)
		}
		messages = append(messages, llms.MessageContent{
			Role:  llms.ChatMessageTypeAI,
			Parts: assistantParts,
		})

		if len(choice.ToolCalls) == 0 {
			finalResponse = choice.Content
			break
		}

		for _, tc := range choice.ToolCalls {
			result := b.invokeTool(ctx, sessionID, tc.FunctionCall.Name, tc.FunctionCall.Arguments)
			messages = append(messages, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{
						ToolCallID: tc.ID,
						Name:       tc.FunctionCall.Name,
						Content:    result,
					},
				},
			})
		}
	}

	if finalResponse == "" {
		finalResponse = "I've reached the maximum number of reasoning steps for this request. Please try a simpler request."
	}

	reply := &Reply{Text: finalResponse}
	if payload := extractPayload(finalResponse); payload != nil {
		reply.Payload = payload
		result := b.validatePayload(payload)
		reply.Validation = &result
	}

	if err := b.Memory.AddMessage(sessionID, b.Persona, "human", input); err != nil {
		b.Log.Warnw("failed to store user message", "session", sessionID, "error", err)
	}
	if err := b.Memory.AddMessage(sessionID, b.Persona, "ai", finalResponse); err != nil {
		b.Log.Warnw("failed to store agent message", "session", sessionID, "error", err)
	}

	b.Audit.Log(observability.Event{
		Type:          observability.EventAgentResponse,
		CorrelationID: sessionID,
		Data: map[string]any{
			"persona":     b.Persona,
			"has_payload": reply.Payload != nil,
		},
	})

	return reply, nil
}

// invokeTool screens a tool call through the policy engine, executes
// it and returns the observation for the model. Errors become
// observations rather than terminating the loop.
func (b *PersonaBrain) invokeTool(ctx context.Context, sessionID, name, args string) string {
	decision, err := b.Policy.Evaluate(ctx, governance.Request{
		Tool:      name,
		Arguments: args,
		SessionID: sessionID,
	})
	if err != nil {
		b.Log.Errorw("policy evaluation failed", "tool", name, "error", err)
		return "Error: tool call could not be evaluated against policy"
	}
	if decision.Effect == governance.EffectDeny {
		b.Metrics.RecordSecurityViolation()
		b.Audit.Log(observability.Event{
			Type:          observability.EventPolicyDenied,
			CorrelationID: sessionID,
			Data:          map[string]any{"tool": name, "reason": decision.Reason},
		})
		return fmt.Sprintf("Denied by policy: %s", decision.Reason)
	}

	tool := b.Registry.Get(name)
	if tool == nil {
		return fmt.Sprintf("Error: Tool %s not found", name)
	}

	b.Audit.Log(observability.Event{
		Type:          observability.EventToolCall,
		CorrelationID: sessionID,
		Data:          map[string]any{"tool": name},
	})

	b.Log.Debugw("executing tool", "tool", name)
	result, err := tool.Execute(ctx, args)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return result
}

// validatePayload routes the extracted payload through the dispatcher
// using the task that matches the persona.
func (b *PersonaBrain) validatePayload(payload map[string]any) validation.Result {
	switch b.Persona {
	case PersonaPlanner:
		return b.Dispatcher.Dispatch(map[string]any{
			"task":             "validate_workout_plan",
			"plan_to_validate": payload,
		})
	default:
		return b.Dispatcher.Dispatch(map[string]any{
			"task":                   "validate_progress_tracking",
			"progress_data_to_check": payload,
		})
	}
}

// extractPayload pulls the first JSON object out of a model response,
// either from a fenced ```json block or from the outermost braces.
// Returns nil when the response carries no object.
func extractPayload(text string) map[string]any {
	candidate := ""
	if start := strings.Index(text, "```json"); start >= 0 {
		rest := text[start+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			candidate = rest[:end]
		}
	}
	if candidate == "" {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start < 0 || end <= start {
			return nil
		}
		candidate = text[start : end+1]
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(candidate)), &payload); err != nil {
		return nil
	}
	if len(payload) == 0 {
		return nil
	}
	return payload
}
