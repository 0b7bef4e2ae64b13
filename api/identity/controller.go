package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/mazebot/service/i"
	"github.com/gin-gonic/gin"
)

// IdentityServer handles HTTP requests related to learner sessions.
type IdentityServer struct {
	authService i.Authenticator
}

// NewIdentityServer creates a new IdentityServer.
func NewIdentityServer(a i.Authenticator) *IdentityServer {
	return &IdentityServer{
		authService: a,
	}
}

// RegisterPublic registers public routes.
func (c *IdentityServer) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/sessions", c.startSession)
}

// RegisterProtected registers privileged routes.
func (c *IdentityServer) RegisterProtected(route *gin.RouterGroup) {
}

// startSession issues a token for a learner name.
func (c *IdentityServer) startSession(ctx *gin.Context) {
	var request SessionRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, token, err := c.authService.StartSession(request.Name)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response := &SessionResponse{
		LearnerID: id.String(),
		Name:      strings.TrimSpace(request.Name),
		Token:     token,
	}
	ctx.JSON(http.StatusCreated, response)
}
