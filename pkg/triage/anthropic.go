package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	log "github.com/sirupsen/logrus"
)

// defaultModel is fast and cheap, which is what a per-report
// classification call wants
const defaultModel = "claude-3-5-haiku-20241022"

const promptTemplate = `You are an expert software engineer evaluating whether a bug can be automatically fixed by an AI agent.

**Bug Details:**
- Priority: {{.Priority}}
- Environment: {{.Environment}}
- Tags: {{.TagList}}

**Description:**
{{.Description}}

**Console Logs/Stack Trace:**
{{.ConsoleLogs}}

**Task:** Evaluate the complexity of this bug and determine if it can be automatically fixed by an AI agent with high confidence.

**Criteria for SIMPLE bugs (can be auto-fixed):**
- Clear, specific error message with file and line number
- Likely affects a single file or small number of files
- Common patterns: typos, missing null checks, simple validation errors, import errors
- No architecture or design changes required

**Criteria for MODERATE bugs (manual fix recommended):**
- Error location unclear or affects multiple files
- Requires understanding of business logic
- May need refactoring or pattern changes

**Criteria for COMPLEX bugs (requires human developer):**
- No clear error message or stack trace
- Architectural or design issues
- Performance or security issues

**Output Format (strict JSON):**
{"complexity": "SIMPLE|MODERATE|COMPLEX", "confidence": 0.0, "reasoning": "...", "likely_files": ["..."], "fix_approach": "...", "can_auto_fix": true}

Respond ONLY with the JSON object, no additional text.`

// AnthropicClassifier implements Classifier using the Anthropic API
type AnthropicClassifier struct {
	client anthropic.Client
	model  anthropic.Model
	prompt *template.Template
}

// NewAnthropicClassifier creates a classifier backed by the Anthropic API
func NewAnthropicClassifier(apiKey string) (*AnthropicClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	prompt, err := template.New("triage").Parse(promptTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse triage prompt template: %w", err)
	}

	return &AnthropicClassifier{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(defaultModel),
		prompt: prompt,
	}, nil
}

// Evaluate classifies one bug's complexity
func (a *AnthropicClassifier) Evaluate(ctx context.Context, req *Request) (*Evaluation, error) {
	prompt, err := a.renderPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("failed to render prompt: %w", err)
	}

	log.WithField("bug_id", req.BugID).Info("Evaluating bug complexity")

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}

	if len(message.Content) == 0 {
		return nil, fmt.Errorf("unexpected response format: no content blocks")
	}
	content := message.Content[0]
	if content.Type != "text" {
		return nil, fmt.Errorf("unexpected response format: not a text block (type=%s)", content.Type)
	}

	eval, err := parseEvaluation(content.Text)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"bug_id":     req.BugID,
		"complexity": eval.Complexity,
		"confidence": eval.Confidence,
	}).Info("Bug complexity evaluated")

	return eval, nil
}

func (a *AnthropicClassifier) renderPrompt(req *Request) (string, error) {
	description := req.Description
	if description == "" {
		description = "No description provided"
	}
	consoleLogs := req.ConsoleLogs
	if consoleLogs == "" {
		consoleLogs = "No logs provided"
	}
	tagList := "None"
	if len(req.Tags) > 0 {
		tagList = strings.Join(req.Tags, ", ")
	}

	var builder strings.Builder
	err := a.prompt.Execute(&builder, map[string]string{
		"Priority":    valueOrUnknown(req.Priority),
		"Environment": valueOrUnknown(req.Environment),
		"TagList":     tagList,
		"Description": description,
		"ConsoleLogs": consoleLogs,
	})
	if err != nil {
		return "", err
	}
	return builder.String(), nil
}

func valueOrUnknown(value string) string {
	if value == "" {
		return "Unknown"
	}
	return value
}

// parseEvaluation extracts and validates the JSON verdict from the
// model's response, tolerating surrounding prose
func parseEvaluation(content string) (*Evaluation, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object found in classifier response")
	}

	eval := &Evaluation{}
	if err := json.Unmarshal([]byte(content[start:end+1]), eval); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}

	switch eval.Complexity {
	case ComplexitySimple, ComplexityModerate, ComplexityComplex:
	default:
		return nil, fmt.Errorf("invalid complexity level %q in classifier response", eval.Complexity)
	}

	if eval.Confidence < 0 || eval.Confidence > 1 {
		return nil, fmt.Errorf("confidence %v out of range in classifier response", eval.Confidence)
	}

	return eval, nil
}
