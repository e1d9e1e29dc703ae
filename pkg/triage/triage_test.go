package triage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldAutoFix(t *testing.T) {
	tests := []struct {
		name string
		eval *Evaluation
		want bool
	}{
		{
			"simple high confidence",
			&Evaluation{Complexity: ComplexitySimple, Confidence: 0.9, CanAutoFix: true},
			true,
		},
		{
			"confidence exactly at threshold",
			&Evaluation{Complexity: ComplexitySimple, Confidence: 0.7, CanAutoFix: true},
			true,
		},
		{
			"confidence just below threshold",
			&Evaluation{Complexity: ComplexitySimple, Confidence: 0.69, CanAutoFix: true},
			false,
		},
		{
			"moderate never auto-fixed",
			&Evaluation{Complexity: ComplexityModerate, Confidence: 0.99, CanAutoFix: true},
			false,
		},
		{
			"complex never auto-fixed",
			&Evaluation{Complexity: ComplexityComplex, Confidence: 1.0, CanAutoFix: true},
			false,
		},
		{
			"classifier veto respected",
			&Evaluation{Complexity: ComplexitySimple, Confidence: 0.95, CanAutoFix: false},
			false,
		},
		{"nil evaluation", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldAutoFix(tt.eval))
		})
	}
}

func TestFallback(t *testing.T) {
	eval := Fallback(errors.New("api unreachable"))

	assert.Equal(t, ComplexityComplex, eval.Complexity)
	assert.Equal(t, 0.0, eval.Confidence)
	assert.False(t, eval.CanAutoFix)
	assert.Contains(t, eval.Reasoning, "api unreachable")
	assert.False(t, ShouldAutoFix(eval), "fallback must never qualify for auto-fix")

	assert.Equal(t, "evaluation failed", Fallback(nil).Reasoning)
}

func TestParseEvaluation(t *testing.T) {
	t.Run("clean JSON", func(t *testing.T) {
		eval, err := parseEvaluation(`{"complexity":"SIMPLE","confidence":0.85,"reasoning":"null check missing","likely_files":["src/auth.ts"],"can_auto_fix":true}`)
		require.NoError(t, err)
		assert.Equal(t, ComplexitySimple, eval.Complexity)
		assert.Equal(t, 0.85, eval.Confidence)
		assert.Equal(t, []string{"src/auth.ts"}, eval.LikelyFiles)
		assert.True(t, eval.CanAutoFix)
	})

	t.Run("surrounding prose tolerated", func(t *testing.T) {
		eval, err := parseEvaluation("Here is my assessment:\n```json\n{\"complexity\":\"MODERATE\",\"confidence\":0.5,\"can_auto_fix\":false}\n```")
		require.NoError(t, err)
		assert.Equal(t, ComplexityModerate, eval.Complexity)
	})

	t.Run("no JSON object", func(t *testing.T) {
		_, err := parseEvaluation("I cannot evaluate this bug.")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no JSON object")
	})

	t.Run("invalid complexity", func(t *testing.T) {
		_, err := parseEvaluation(`{"complexity":"TRIVIAL","confidence":0.9}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid complexity")
	})

	t.Run("confidence out of range", func(t *testing.T) {
		_, err := parseEvaluation(`{"complexity":"SIMPLE","confidence":1.5}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	})
}

func TestAnthropicClassifier_RequiresAPIKey(t *testing.T) {
	_, err := NewAnthropicClassifier("")
	require.Error(t, err)
}

func TestAnthropicClassifier_RenderPrompt(t *testing.T) {
	classifier, err := NewAnthropicClassifier("test-key")
	require.NoError(t, err)

	t.Run("full request", func(t *testing.T) {
		prompt, err := classifier.renderPrompt(&Request{
			BugID:       "BUG-1",
			Description: "Checkout crashes on submit",
			ConsoleLogs: "TypeError: cannot read 'total' of undefined",
			Environment: "PROD",
			Priority:    "HIGH",
			Tags:        []string{"checkout", "crash"},
		})
		require.NoError(t, err)
		assert.Contains(t, prompt, "Checkout crashes on submit")
		assert.Contains(t, prompt, "TypeError")
		assert.Contains(t, prompt, "checkout, crash")
		assert.Contains(t, prompt, "Priority: HIGH")
	})

	t.Run("empty fields get placeholders", func(t *testing.T) {
		prompt, err := classifier.renderPrompt(&Request{BugID: "BUG-2"})
		require.NoError(t, err)
		assert.Contains(t, prompt, "No description provided")
		assert.Contains(t, prompt, "No logs provided")
		assert.Contains(t, prompt, "Tags: None")
		assert.Contains(t, prompt, "Priority: Unknown")
	})
}
