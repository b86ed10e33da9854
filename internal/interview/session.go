package interview

import (
	"context"
	"strings"
	"unicode"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/candidate"
	"github.com/talentscout/screener/internal/extract"
	"github.com/talentscout/screener/internal/techstack"

	"go.uber.org/zap"
)

const (
	terminationText = "Thank you for your time. The conversation has been ended. Have a great day!"
	closingAckText  = "Thank you again for your time. A recruiter from TalentScout will be in touch soon if your profile matches our current openings."
	apologyText     = "I'm sorry, I'm having trouble responding right now. Could you please repeat that?"

	defaultTotalQuestions = 3
)

// exitTokens end the conversation immediately when any of them appears in
// the utterance, regardless of stage. Matching is by substring, so a word
// merely containing a token (e.g. "endpoint") also terminates.
var exitTokens = []string{"exit", "quit", "bye", "goodbye", "end"}

var greetingWords = []string{"hello", "hi", "hey", "greetings"}

// Store persists a full candidate snapshot, returning the storage key it
// was written under.
type Store interface {
	Save(profile *candidate.Profile) (string, error)
}

// Config contains the tunable settings of a screening session.
type Config struct {
	// TotalQuestions is the number of technical questions to ask once the
	// tech_questions stage begins. Defaults to 3.
	TotalQuestions int
}

// Deps aggregates the collaborators a session needs.
type Deps struct {
	Responder ai.Responder
	Store     Store
	Logger    *zap.Logger
}

// Session owns one candidate conversation: the profile being filled in,
// the stage state, and the turn cycle around the response generator.
// A session is not safe for concurrent use; turns are strictly sequential.
type Session struct {
	profile        *candidate.Profile
	state          *State
	responder      ai.Responder
	store          Store
	logger         *zap.Logger
	totalQuestions int
	terminated     bool
}

// New creates a session for a fresh conversation.
func New(cfg *Config, deps *Deps) *Session {
	total := defaultTotalQuestions
	if cfg != nil && cfg.TotalQuestions > 0 {
		total = cfg.TotalQuestions
	}

	log := zap.NewNop()
	if deps != nil && deps.Logger != nil {
		log = deps.Logger
	}

	s := &Session{
		profile:        candidate.NewProfile(),
		state:          NewState(),
		logger:         log,
		totalQuestions: total,
	}
	if deps != nil {
		s.responder = deps.Responder
		s.store = deps.Store
	}

	return s
}

// Profile returns the candidate record being built by this session.
func (s *Session) Profile() *candidate.Profile { return s.profile }

// State returns the session's conversation state.
func (s *Session) State() *State { return s.state }

// Terminated reports whether the candidate ended the conversation with an
// exit token.
func (s *Session) Terminated() bool { return s.terminated }

// Turn processes one candidate utterance and returns the assistant reply.
// It never surfaces generator or persistence failures to the caller: those
// are logged and mapped to fixed texts.
func (s *Session) Turn(ctx context.Context, utterance string) string {
	if s.terminated {
		return terminationText
	}

	// The exit check has priority over everything, including mid-question
	// conversations, and skips all state mutation.
	if containsExitToken(utterance) {
		s.terminated = true
		return terminationText
	}

	extracted := s.extractContactDetails(utterance)

	s.profile.AppendLog(candidate.RoleUser, utterance)

	intent, params, fixed := s.dispatch(utterance, extracted)

	reply := fixed
	if reply == "" {
		reply = s.generate(ctx, intent, params)
	}

	s.profile.AppendLog(candidate.RoleAssistant, reply)
	s.persist()

	return reply
}

// extractContactDetails runs the pattern extractor and collects email and
// phone when they are still eligible. It reports whether anything was
// collected, which suppresses the positional fallback for this turn.
func (s *Session) extractContactDetails(utterance string) bool {
	res := extract.Extract(utterance)

	collected := false
	if res.Email != "" && !s.state.IsCollected(candidate.FieldEmail) {
		s.collect(candidate.FieldEmail, res.Email)
		collected = true
	}
	if res.Phone != "" && !s.state.IsCollected(candidate.FieldPhone) {
		s.collect(candidate.FieldPhone, res.Phone)
		collected = true
	}

	return collected
}

// dispatch routes the utterance to the handler for the current stage and
// returns the intent to generate, its parameters, and optionally a fixed
// reply that bypasses the generator.
func (s *Session) dispatch(utterance string, extracted bool) (ai.Intent, map[string]any, string) {
	if strings.TrimSpace(utterance) == "" {
		return ai.IntentFallback, map[string]any{ai.ParamCurrentStage: string(s.state.Stage)}, ""
	}

	switch s.state.Stage {
	case StageGreeting:
		return s.handleGreeting(utterance)
	case StageInfoGathering:
		return s.handleInfoGathering(utterance, extracted)
	case StageTechQuestions:
		return s.handleTechQuestions(utterance)
	case StageClosing:
		// Terminal for data collection: a fixed acknowledgment, no state
		// mutation and no generator call.
		return "", nil, closingAckText
	default:
		return ai.IntentFallback, map[string]any{ai.ParamCurrentStage: string(s.state.Stage)}, ""
	}
}

func (s *Session) handleGreeting(utterance string) (ai.Intent, map[string]any, string) {
	if !s.state.IsCollected(candidate.FieldFullName) && containsGreetingWord(utterance) {
		return ai.IntentGreet, nil, ""
	}

	// The first non-greeting utterance is taken verbatim as the name.
	s.collect(candidate.FieldFullName, utterance)
	s.state.Stage = StageInfoGathering

	return ai.IntentGatherNextField, map[string]any{
		ai.ParamRemainingFields: candidate.Labels(s.state.Remaining()),
	}, ""
}

func (s *Session) handleInfoGathering(utterance string, extracted bool) (ai.Intent, map[string]any, string) {
	// The remaining-field list handed to the generator is snapshotted
	// before this turn's assignment, so the prompt still names the field
	// that was just supplied. Preserved from the observed behavior.
	remaining := candidate.Labels(s.state.Remaining())

	if !extracted {
		s.assignPositional(utterance)
	}

	if s.state.AllCollected() {
		s.state.Stage = StageTechQuestions
		s.state.TotalQuestions = s.totalQuestions
		s.state.CurrentQuestion = 1

		return ai.IntentAskTechQuestion, map[string]any{
			ai.ParamTechStack: techstack.Effective(s.profile.TechStack),
		}, ""
	}

	return ai.IntentGatherNextField, map[string]any{
		ai.ParamRemainingFields: remaining,
	}, ""
}

// assignPositional applies the ordered fallback rules when pattern
// extraction found nothing: a digit-bearing answer is filed as phone, a
// digit plus "year" as experience, anything else goes verbatim to the next
// uncollected field in declared order. At most one field is assigned.
// The misfiling risk of digit-bearing answers is a known, preserved trait.
func (s *Session) assignPositional(utterance string) {
	lower := strings.ToLower(utterance)
	hasDigit := strings.ContainsFunc(utterance, unicode.IsDigit)

	switch {
	case !s.state.IsCollected(candidate.FieldPhone) && hasDigit:
		s.collect(candidate.FieldPhone, utterance)
	case !s.state.IsCollected(candidate.FieldExperience) && hasDigit && strings.Contains(lower, "year"):
		s.collect(candidate.FieldExperience, utterance)
	case !s.state.IsCollected(candidate.FieldDesiredPosition):
		s.collect(candidate.FieldDesiredPosition, utterance)
	case !s.state.IsCollected(candidate.FieldLocation):
		s.collect(candidate.FieldLocation, utterance)
	case !s.state.IsCollected(candidate.FieldTechStack):
		s.collect(candidate.FieldTechStack, utterance)
	}
}

func (s *Session) handleTechQuestions(utterance string) (ai.Intent, map[string]any, string) {
	s.profile.RecordTechnicalResponse(s.state.CurrentQuestion, utterance)

	if s.state.CurrentQuestion >= s.state.TotalQuestions {
		s.state.Stage = StageClosing
		return ai.IntentClose, map[string]any{
			ai.ParamCandidateName: s.profile.FullName,
		}, ""
	}

	s.state.CurrentQuestion++

	return ai.IntentAskFollowUp, map[string]any{
		ai.ParamTechStack:      techstack.Effective(s.profile.TechStack),
		ai.ParamQuestionNumber: s.state.CurrentQuestion,
		ai.ParamTotalQuestions: s.state.TotalQuestions,
	}, ""
}

func (s *Session) collect(f candidate.Field, value string) {
	if s.state.IsCollected(f) {
		return
	}
	s.profile.Set(f, value)
	s.state.Collected[f] = true
}

// generate calls the responder and contains any failure: the candidate
// always gets a reply.
func (s *Session) generate(ctx context.Context, intent ai.Intent, params map[string]any) string {
	if s.responder == nil {
		return apologyText
	}

	reply, err := s.responder.Generate(ctx, intent, s.profile.ConversationLog, params)
	if err != nil {
		s.logger.Warn("response generation failed",
			zap.String("intent", string(intent)),
			zap.Error(err),
		)
		return apologyText
	}

	return reply
}

// persist writes the snapshot fire-and-forget: failures are logged, never
// surfaced. No snapshot is written until the candidate's name is known.
func (s *Session) persist() {
	if s.store == nil || s.profile.FullName == "" {
		return
	}

	key, err := s.store.Save(s.profile)
	if err != nil {
		s.logger.Warn("saving candidate snapshot failed", zap.Error(err))
		return
	}

	s.logger.Debug("candidate snapshot saved", zap.String("key", key))
}

func containsExitToken(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, token := range exitTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func containsGreetingWord(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, word := range greetingWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
