package questionnaire

import "strings"

// Role tags a transcript turn.
type Role string

const (
	RoleAgent Role = "agent"
	RoleUser  Role = "user"
)

// Turn is one entry of the conversation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Transcript is the append-only conversation memory of a session.
type Transcript []Turn

// Render formats the transcript as prompt context.
func (t Transcript) Render() string {
	var b strings.Builder
	for i, turn := range t {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch turn.Role {
		case RoleUser:
			b.WriteString("使用者：")
		default:
			b.WriteString("助理：")
		}
		b.WriteString(turn.Text)
	}
	return b.String()
}

// Count returns the number of turns with the given role.
func (t Transcript) Count(role Role) int {
	n := 0
	for _, turn := range t {
		if turn.Role == role {
			n++
		}
	}
	return n
}

// TitleSet holds the question titles already shown in a session.
type TitleSet []string

func (s TitleSet) Contains(title string) bool {
	for _, t := range s {
		if t == title {
			return true
		}
	}
	return false
}

// Add records title unless it is already present.
func (s *TitleSet) Add(title string) {
	if !s.Contains(title) {
		*s = append(*s, title)
	}
}

// Render lists the titles one per line.
func (s TitleSet) Render() string {
	return strings.Join(s, "\n")
}
