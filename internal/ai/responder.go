package ai

import (
	"context"

	"github.com/talentscout/screener/internal/candidate"
)

// Intent is the abstract instruction describing what kind of reply the
// response generator should produce next.
type Intent string

const (
	IntentGreet           Intent = "greet"
	IntentGatherNextField Intent = "gather_next_field"
	IntentAskTechQuestion Intent = "ask_tech_question"
	IntentAskFollowUp     Intent = "ask_follow_up"
	IntentClose           Intent = "close"
	IntentFallback        Intent = "fallback"
)

// Param keys recognized by responder implementations. Values are passed as
// a loose map and decoded by the implementation.
const (
	ParamRemainingFields = "remaining_fields"
	ParamTechStack       = "tech_stack"
	ParamQuestionNumber  = "question_number"
	ParamTotalQuestions  = "total_questions"
	ParamCandidateName   = "candidate_name"
	ParamCurrentStage    = "current_stage"
)

// Responder turns an intent, the conversation transcript, and
// intent-specific parameters into reply text. Implementations must never
// return empty text with a nil error.
type Responder interface {
	Generate(ctx context.Context, intent Intent, transcript []candidate.Message, params map[string]any) (string, error)
}
