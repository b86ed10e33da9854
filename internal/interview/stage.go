// Package interview drives the staged screening conversation: collecting
// the required candidate fields, asking technical questions, and closing.
package interview

import (
	"github.com/talentscout/screener/internal/candidate"
)

// Stage is a discrete phase of the scripted conversation. Progression is
// strictly forward: greeting, info_gathering, tech_questions, closing.
type Stage string

const (
	StageGreeting      Stage = "greeting"
	StageInfoGathering Stage = "info_gathering"
	StageTechQuestions Stage = "tech_questions"
	StageClosing       Stage = "closing"
)

// State tracks where a single conversation is: its stage, which fields
// have been collected, and the technical question counters.
type State struct {
	Stage           Stage
	Collected       map[candidate.Field]bool
	CurrentQuestion int
	TotalQuestions  int
}

// NewState returns the initial state for a fresh conversation.
func NewState() *State {
	return &State{
		Stage:     StageGreeting,
		Collected: make(map[candidate.Field]bool),
	}
}

// IsCollected reports whether the field has been collected.
func (s *State) IsCollected(f candidate.Field) bool {
	return s.Collected[f]
}

// Remaining lists the required fields not yet collected, in declared order.
func (s *State) Remaining() []candidate.Field {
	remaining := make([]candidate.Field, 0, len(candidate.RequiredFields))
	for _, f := range candidate.RequiredFields {
		if !s.Collected[f] {
			remaining = append(remaining, f)
		}
	}
	return remaining
}

// AllCollected reports whether every required field has been collected.
func (s *State) AllCollected() bool {
	return len(s.Remaining()) == 0
}
