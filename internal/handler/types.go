package handler

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type registerResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type meResponse struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	IsVerified bool     `json:"is_verified"`
	IsFilled   bool     `json:"is_filled"`
	Roles      []string `json:"roles,omitempty"`
}

type isFilledResponse struct {
	IsFilled bool `json:"is_filled"`
}

type moodLogRequest struct {
	Date  string  `json:"date" binding:"required"`
	Mood  *string `json:"mood"`
	Diary *string `json:"diary"`
}

type moodLogResponse struct {
	Date  string `json:"date"`
	Mood  string `json:"mood"`
	Diary string `json:"diary"`
}

type moodLogListResponse struct {
	Logs []moodLogResponse `json:"logs"`
}

type profileRequest struct {
	Activity []string `json:"activity"`
}

type profileResponse struct {
	Activity []string `json:"activity"`
	IsFilled bool     `json:"is_filled"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type questionResponse struct {
	Question  string `json:"question"`
	Exhausted bool   `json:"exhausted,omitempty"`
}

type summaryResponse struct {
	Recommendation string `json:"recommendation"`
}

type adminUserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	IsVerified bool   `json:"is_verified"`
	IsFilled   bool   `json:"is_filled"`
}

type adminUserListResponse struct {
	Users []adminUserResponse `json:"users"`
}

type adminMoodLogResponse struct {
	ID       int64  `json:"id"`
	UserName string `json:"user_name"`
	Date     string `json:"date"`
	Mood     string `json:"mood"`
	Diary    string `json:"diary"`
}

type adminMoodLogListResponse struct {
	Logs []adminMoodLogResponse `json:"logs"`
}
