// Package assistant is the best-effort AI collaborator: meal parsing,
// exercise swaps and additions, and the coach chat. Every call degrades to
// an empty result or fallback text on failure and is never retried.
package assistant

import (
	"context"
	"fmt"

	"github.com/marcus/p75/internal/models"
)

//go:generate mockgen -source=assistant.go -destination=mocks/collaborator.go -package=mocks

// Fallback coach replies
const (
	ChatEmptyReply = "I'm having trouble reaching the muscle mainframe. Try again."
	ChatErrorReply = "Network error. Even machines need a deload sometimes."
	DisabledReply  = "The coach is offline. Set ai.api_key with 'p75 config set ai.api_key KEY' to enable it."
)

// Alternative is a replacement movement for an exercise
type Alternative struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewExercise is a suggested addition to a routine
type NewExercise struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	TargetMuscles string `json:"targetMuscles"`
	Sets          int    `json:"sets"`
	Reps          string `json:"reps"`
}

// Collaborator is the external AI service
type Collaborator interface {
	// ParseMealText estimates macros for free text; empty on failure
	ParseMealText(ctx context.Context, text string) []models.FoodItem
	// SuggestAlternative proposes one movement for the same muscles; nil on failure
	SuggestAlternative(ctx context.Context, exerciseName, targetMuscles string) *Alternative
	// SuggestNewExercise proposes an addition complementing existing; nil on failure
	SuggestNewExercise(ctx context.Context, routineName string, existing []string) *NewExercise
	// Chat replies to message given the transcript; fallback text on failure
	Chat(ctx context.Context, message string, history []models.ChatMessage, userContext string) string
	// Enabled reports whether calls can reach a model
	Enabled() bool
}

// UserContext is the profile summary sent with every chat message
func UserContext(p models.UserProfile) string {
	return fmt.Sprintf("Current weight: %gkg. Target: %gkg.", p.CurrentWeight, p.TargetWeight)
}

// Disabled is the collaborator used when no API key is configured
type Disabled struct{}

func (Disabled) ParseMealText(context.Context, string) []models.FoodItem { return nil }

func (Disabled) SuggestAlternative(context.Context, string, string) *Alternative { return nil }

func (Disabled) SuggestNewExercise(context.Context, string, []string) *NewExercise { return nil }

func (Disabled) Chat(context.Context, string, []models.ChatMessage, string) string {
	return DisabledReply
}

func (Disabled) Enabled() bool { return false }
