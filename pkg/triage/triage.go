// Package triage classifies freshly filed bugs by complexity so that
// simple ones can be handed to an automated fixer. The classifier is
// pluggable; the auto-fix policy is a pure function independent of
// which implementation backs it.
package triage

import (
	"context"
)

// Complexity is the classifier's verdict
type Complexity string

const (
	ComplexitySimple   Complexity = "SIMPLE"
	ComplexityModerate Complexity = "MODERATE"
	ComplexityComplex  Complexity = "COMPLEX"
)

// AutoFixConfidenceThreshold is the minimum confidence required before
// a SIMPLE bug is handed to the automated fixer
const AutoFixConfidenceThreshold = 0.7

// Evaluation is the classifier's full assessment of one bug
type Evaluation struct {
	Complexity  Complexity `json:"complexity"`
	Confidence  float64    `json:"confidence"`
	Reasoning   string     `json:"reasoning"`
	LikelyFiles []string   `json:"likely_files,omitempty"`
	FixApproach string     `json:"fix_approach,omitempty"`
	CanAutoFix  bool       `json:"can_auto_fix"`
}

// Request carries the bug details the classifier needs
type Request struct {
	BugID       string
	Description string
	ConsoleLogs string
	Environment string
	Priority    string
	Tags        []string
}

// Classifier evaluates bug complexity
type Classifier interface {
	Evaluate(ctx context.Context, req *Request) (*Evaluation, error)
}

// ShouldAutoFix decides whether a bug goes to the automated fixer:
// only SIMPLE bugs with high confidence qualify
func ShouldAutoFix(eval *Evaluation) bool {
	return eval != nil &&
		eval.Complexity == ComplexitySimple &&
		eval.Confidence >= AutoFixConfidenceThreshold &&
		eval.CanAutoFix
}

// Fallback is the evaluation used when classification fails: COMPLEX
// with zero confidence, so nothing is auto-fixed on an error path
func Fallback(err error) *Evaluation {
	reasoning := "evaluation failed"
	if err != nil {
		reasoning = "evaluation failed: " + err.Error()
	}
	return &Evaluation{
		Complexity: ComplexityComplex,
		Confidence: 0.0,
		Reasoning:  reasoning,
		CanAutoFix: false,
	}
}
