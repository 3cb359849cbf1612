package messaging

import "time"

// VerificationMail asks the mailer to send an email-confirmation link.
type VerificationMail struct {
	To        string    `json:"to"`
	Name      string    `json:"name"`
	VerifyURL string    `json:"verify_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// QuestionnaireCompleted is emitted once a user receives a recommendation.
type QuestionnaireCompleted struct {
	UserID         string    `json:"user_id"`
	Steps          int       `json:"steps"`
	Recommendation string    `json:"recommendation"`
	CompletedAt    time.Time `json:"completed_at"`
}
