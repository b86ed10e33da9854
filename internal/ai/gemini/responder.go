package gemini

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/candidate"
	"github.com/talentscout/screener/internal/logger"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

//go:embed prompts/*.md
var promptFS embed.FS

// templateFiles maps each intent to its embedded prompt template.
var templateFiles = map[ai.Intent]string{
	ai.IntentGreet:           "prompts/greet.md",
	ai.IntentGatherNextField: "prompts/gather_next_field.md",
	ai.IntentAskTechQuestion: "prompts/ask_tech_question.md",
	ai.IntentAskFollowUp:     "prompts/ask_follow_up.md",
	ai.IntentClose:           "prompts/close.md",
	ai.IntentFallback:        "prompts/fallback.md",
}

const defaultMaxLogLength = 200

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Responder renders per-intent prompt templates and delegates text
// generation to a Gemini content generator.
type Responder struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewResponder creates a Responder on top of the provided generator.
func NewResponder(generator contentGenerator, log *zap.Logger, maxLogLength int) *Responder {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Responder{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

type gatherParams struct {
	RemainingFields []string `mapstructure:"remaining_fields"`
}

type techQuestionParams struct {
	TechStack string `mapstructure:"tech_stack"`
}

type followUpParams struct {
	TechStack      string `mapstructure:"tech_stack"`
	QuestionNumber int    `mapstructure:"question_number"`
	TotalQuestions int    `mapstructure:"total_questions"`
}

type closeParams struct {
	CandidateName string `mapstructure:"candidate_name"`
}

type fallbackParams struct {
	CurrentStage string `mapstructure:"current_stage"`
}

// Generate builds the prompt for the given intent and returns the model's
// reply. An empty reply is reported as an error so callers can fall back
// to a fixed text.
func (r *Responder) Generate(ctx context.Context, intent ai.Intent, transcript []candidate.Message, params map[string]any) (string, error) {
	prompt, err := r.buildPrompt(intent, transcript, params)
	if err != nil {
		return "", err
	}

	r.logger.Debug("gemini generate content request",
		zap.String("intent", string(intent)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	r.logger.Debug("gemini generate content response",
		zap.String("intent", string(intent)),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, r.maxLogLen)),
	)

	reply := strings.TrimSpace(raw)
	if reply == "" {
		return "", errors.New("empty reply from generator")
	}

	return reply, nil
}

func (r *Responder) buildPrompt(intent ai.Intent, transcript []candidate.Message, params map[string]any) (string, error) {
	file, ok := templateFiles[intent]
	if !ok {
		return "", fmt.Errorf("unknown intent: %s", intent)
	}

	raw, err := promptFS.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read prompt template for %s: %w", intent, err)
	}

	prompt := strings.ReplaceAll(string(raw), "{{CHAT_HISTORY}}", renderTranscript(transcript))

	switch intent {
	case ai.IntentGreet:
		// Only the transcript is needed.
	case ai.IntentGatherNextField:
		var p gatherParams
		if err := mapstructure.Decode(params, &p); err != nil {
			return "", fmt.Errorf("decode gather params: %w", err)
		}
		prompt = strings.ReplaceAll(prompt, "{{REMAINING_FIELDS}}", strings.Join(p.RemainingFields, ", "))
	case ai.IntentAskTechQuestion:
		var p techQuestionParams
		if err := mapstructure.Decode(params, &p); err != nil {
			return "", fmt.Errorf("decode tech question params: %w", err)
		}
		prompt = strings.ReplaceAll(prompt, "{{TECH_STACK}}", p.TechStack)
	case ai.IntentAskFollowUp:
		var p followUpParams
		if err := mapstructure.Decode(params, &p); err != nil {
			return "", fmt.Errorf("decode follow-up params: %w", err)
		}
		prompt = strings.ReplaceAll(prompt, "{{TECH_STACK}}", p.TechStack)
		prompt = strings.ReplaceAll(prompt, "{{QUESTION_NUMBER}}", strconv.Itoa(p.QuestionNumber))
		prompt = strings.ReplaceAll(prompt, "{{TOTAL_QUESTIONS}}", strconv.Itoa(p.TotalQuestions))
	case ai.IntentClose:
		var p closeParams
		if err := mapstructure.Decode(params, &p); err != nil {
			return "", fmt.Errorf("decode close params: %w", err)
		}
		prompt = strings.ReplaceAll(prompt, "{{CANDIDATE_NAME}}", p.CandidateName)
	case ai.IntentFallback:
		var p fallbackParams
		if err := mapstructure.Decode(params, &p); err != nil {
			return "", fmt.Errorf("decode fallback params: %w", err)
		}
		prompt = strings.ReplaceAll(prompt, "{{CURRENT_STAGE}}", p.CurrentStage)
	}

	return prompt, nil
}

func renderTranscript(transcript []candidate.Message) string {
	lines := make([]string, 0, len(transcript))
	for _, msg := range transcript {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}
	return strings.Join(lines, "\n")
}
