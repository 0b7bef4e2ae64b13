package service

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/beka-birhanu/mazebot/service/i"
	"github.com/google/uuid"
)

const (
	sessionTTL        = 24 * time.Hour
	maxLearnerNameLen = 32
)

var ErrInvalidLearnerName = errors.New("learner name must be 1 to 32 characters")

// Claim keys carried by session tokens.
const (
	ClaimLearnerID = "learnerID"
	ClaimLearner   = "learner"
)

// Session issues tokens that identify a learner for the length of a session.
// Learners have no accounts; a name is all that is needed.
type Session struct {
	tokenizer i.Tokenizer
}

// NewSession creates a Session signing tokens with the given tokenizer.
func NewSession(tokenizer i.Tokenizer) *Session {
	return &Session{tokenizer: tokenizer}
}

// StartSession returns a fresh learner ID and a token carrying it.
func (s *Session) StartSession(name string) (uuid.UUID, string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxLearnerNameLen {
		return uuid.Nil, "", ErrInvalidLearnerName
	}

	id := uuid.New()
	token, err := s.tokenizer.Generate(map[string]interface{}{
		ClaimLearnerID: id.String(),
		ClaimLearner:   name,
	}, sessionTTL)
	if err != nil {
		return uuid.Nil, "", err
	}
	return id, token, nil
}
