package questionnaire

import "strings"

// Line markers of a question block.
const (
	QuestionMarker  = "問題："
	OptionOneMarker = "選項一："
	OptionTwoMarker = "選項二："
)

// Question is one question block: a title line and two option lines. Each
// field keeps its marker prefix.
type Question struct {
	Title     string `json:"title"`
	OptionOne string `json:"option_one"`
	OptionTwo string `json:"option_two"`
}

// Text renders the block the way it is shown to the user.
func (q Question) Text() string {
	return q.Title + "\n" + q.OptionOne + "\n" + q.OptionTwo
}

// ParseQuestion finds the first three consecutive lines shaped as
// 問題：… / 選項一：… / 選項二：… in raw generator output. Text around the
// block is ignored, each line is trimmed, and every marker must be followed
// by at least one character.
func ParseQuestion(raw string) (Question, bool) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	for i := 0; i+2 < len(lines); i++ {
		if hasContent(lines[i], QuestionMarker) &&
			hasContent(lines[i+1], OptionOneMarker) &&
			hasContent(lines[i+2], OptionTwoMarker) {
			return Question{Title: lines[i], OptionOne: lines[i+1], OptionTwo: lines[i+2]}, true
		}
	}
	return Question{}, false
}

// MustParseQuestion is ParseQuestion for fixed, known-good blocks.
func MustParseQuestion(raw string) Question {
	q, ok := ParseQuestion(raw)
	if !ok {
		panic("questionnaire: malformed question block: " + raw)
	}
	return q
}

func hasContent(line, marker string) bool {
	return strings.HasPrefix(line, marker) && strings.TrimSpace(strings.TrimPrefix(line, marker)) != ""
}
