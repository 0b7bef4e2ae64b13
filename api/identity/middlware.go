package identity

import (
	"errors"
	"net/http"
	"strings"

	"github.com/beka-birhanu/mazebot/service"
	"github.com/beka-birhanu/mazebot/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserClaims is the key used to store user claims in the Gin context.
	ContextUserClaims = "userClaims"
)

// ErrNoLearner is returned when the request carries no usable learner claims.
var ErrNoLearner = errors.New("no learner in request")

// Learner is the identity a session token carries.
type Learner struct {
	ID   uuid.UUID
	Name string
}

func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Status(http.StatusUnauthorized) // No token found in the header.
			c.Abort()
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Status(http.StatusUnauthorized) // Malformed Authorization header.
			c.Abort()
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		// Attach user claims to the request context for further use.
		c.Set(ContextUserClaims, claims)
		c.Next()
	}
}

// LearnerFrom reads the learner the Authoriz middleware attached to c.
func LearnerFrom(c *gin.Context) (Learner, error) {
	raw, ok := c.Get(ContextUserClaims)
	if !ok {
		return Learner{}, ErrNoLearner
	}
	claims, ok := raw.(map[string]interface{})
	if !ok {
		return Learner{}, ErrNoLearner
	}

	idText, _ := claims[service.ClaimLearnerID].(string)
	id, err := uuid.Parse(idText)
	if err != nil {
		return Learner{}, ErrNoLearner
	}
	name, _ := claims[service.ClaimLearner].(string)
	if name == "" {
		return Learner{}, ErrNoLearner
	}
	return Learner{ID: id, Name: name}, nil
}
