package questionnaire

import (
	"errors"
	"time"
)

// ErrNoActiveSession is returned when an identity has no questionnaire in progress.
var ErrNoActiveSession = errors.New("questionnaire not started")

// Session is the questionnaire state of one user. Step always equals the
// number of user turns in Transcript.
type Session struct {
	Identity     string     `json:"identity"`
	Step         int        `json:"step"`
	Transcript   Transcript `json:"transcript"`
	IssuedTitles TitleSet   `json:"issued_titles"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewSession returns an empty session for identity.
func NewSession(identity string, now time.Time) *Session {
	return &Session{
		Identity:     identity,
		Transcript:   Transcript{},
		IssuedTitles: TitleSet{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	c.Transcript = append(Transcript(nil), s.Transcript...)
	c.IssuedTitles = append(TitleSet(nil), s.IssuedTitles...)
	return &c
}

func (s *Session) recordAnswer(answer string) {
	s.Transcript = append(s.Transcript, Turn{Role: RoleUser, Text: answer})
	s.Step++
}

func (s *Session) recordQuestion(q Question) {
	s.Transcript = append(s.Transcript, Turn{Role: RoleAgent, Text: q.Text()})
	s.IssuedTitles.Add(q.Title)
}
