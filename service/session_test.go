package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTokenizer struct{ mock.Mock }

func (m *MockTokenizer) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	args := m.Called(claims, expTime)
	return args.String(0), args.Error(1)
}

func (m *MockTokenizer) Decode(token string) (map[string]interface{}, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(map[string]interface{})
	return claims, args.Error(1)
}

func TestStartSession(t *testing.T) {
	t.Run("issues token", func(t *testing.T) {
		tk := &MockTokenizer{}
		tk.On("Generate", mock.MatchedBy(func(c map[string]interface{}) bool {
			return c[ClaimLearner] == "ada" && c[ClaimLearnerID] != ""
		}), sessionTTL).Return("signed", nil)

		id, token, err := NewSession(tk).StartSession("  ada ")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		assert.Equal(t, "signed", token)
		tk.AssertExpectations(t)
	})

	t.Run("rejects bad names", func(t *testing.T) {
		s := NewSession(&MockTokenizer{})
		for _, name := range []string{"", "   ", strings.Repeat("a", maxLearnerNameLen+1)} {
			_, _, err := s.StartSession(name)
			assert.ErrorIs(t, err, ErrInvalidLearnerName)
		}
	})

	t.Run("tokenizer failure", func(t *testing.T) {
		tk := &MockTokenizer{}
		tk.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("boom"))

		_, _, err := NewSession(tk).StartSession("ada")
		assert.Error(t, err)
	})
}
