package candidate

import (
	"strings"
	"time"
)

// Field identifies one of the attributes collected from a candidate
// during the screening conversation.
type Field string

const (
	FieldFullName        Field = "full_name"
	FieldEmail           Field = "email"
	FieldPhone           Field = "phone"
	FieldExperience      Field = "experience"
	FieldDesiredPosition Field = "desired_position"
	FieldLocation        Field = "location"
	FieldTechStack       Field = "tech_stack"
)

// RequiredFields lists every field that must be collected before the
// technical portion of the screening can begin. The order matters: it is
// the order positional assignment and remaining-field listings follow.
var RequiredFields = []Field{
	FieldFullName,
	FieldEmail,
	FieldPhone,
	FieldExperience,
	FieldDesiredPosition,
	FieldLocation,
	FieldTechStack,
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single transcript entry.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// TechnicalResponse records the candidate's answer to one technical question.
type TechnicalResponse struct {
	QuestionNumber int    `json:"question_number"`
	Response       string `json:"response"`
}

// Profile is the full candidate record built up over a conversation and
// persisted after every turn.
type Profile struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Experience      string `json:"experience"`
	DesiredPosition string `json:"desired_position"`
	Location        string `json:"location"`
	TechStack       string `json:"tech_stack"`

	ConversationLog    []Message           `json:"conversation_log"`
	TechnicalResponses []TechnicalResponse `json:"technical_responses"`
}

// NewProfile returns an empty profile ready for a new conversation.
func NewProfile() *Profile {
	return &Profile{
		ConversationLog:    []Message{},
		TechnicalResponses: []TechnicalResponse{},
	}
}

// Value returns the current value of a required field.
func (p *Profile) Value(f Field) string {
	switch f {
	case FieldFullName:
		return p.FullName
	case FieldEmail:
		return p.Email
	case FieldPhone:
		return p.Phone
	case FieldExperience:
		return p.Experience
	case FieldDesiredPosition:
		return p.DesiredPosition
	case FieldLocation:
		return p.Location
	case FieldTechStack:
		return p.TechStack
	}
	return ""
}

// Set assigns a value to a required field. Unknown fields are ignored.
func (p *Profile) Set(f Field, value string) {
	switch f {
	case FieldFullName:
		p.FullName = value
	case FieldEmail:
		p.Email = value
	case FieldPhone:
		p.Phone = value
	case FieldExperience:
		p.Experience = value
	case FieldDesiredPosition:
		p.DesiredPosition = value
	case FieldLocation:
		p.Location = value
	case FieldTechStack:
		p.TechStack = value
	}
}

// AppendLog adds a transcript entry with the current time.
func (p *Profile) AppendLog(role, content string) {
	p.ConversationLog = append(p.ConversationLog, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// RecordTechnicalResponse stores the candidate's answer to the given
// technical question.
func (p *Profile) RecordTechnicalResponse(questionNumber int, response string) {
	p.TechnicalResponses = append(p.TechnicalResponses, TechnicalResponse{
		QuestionNumber: questionNumber,
		Response:       response,
	})
}

// Label returns the human-readable form of a field name, built by
// title-casing the underscore-separated parts ("desired_position" becomes
// "Desired Position").
func Label(f Field) string {
	parts := strings.Split(string(f), "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

// Labels maps Label over a list of fields, preserving order.
func Labels(fields []Field) []string {
	labels := make([]string, 0, len(fields))
	for _, f := range fields {
		labels = append(labels, Label(f))
	}
	return labels
}
