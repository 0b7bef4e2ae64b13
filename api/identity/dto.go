package identity

// SessionRequest starts a learner session.
type SessionRequest struct {
	Name string `json:"name" binding:"required"`
}

// SessionResponse carries the learner ID and the bearer token of a new session.
type SessionResponse struct {
	LearnerID string `json:"learner_id"`
	Name      string `json:"name"`
	Token     string `json:"token"`
}
