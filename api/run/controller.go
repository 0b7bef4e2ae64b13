package runapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/mazebot/api/identity"
	dmn "github.com/beka-birhanu/mazebot/domain"
	"github.com/beka-birhanu/mazebot/service"
	"github.com/beka-birhanu/mazebot/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunController serves runs and leaderboards.
type RunController struct {
	sandbox i.Sandbox
	logger  *zap.Logger
}

// NewRunController initializes a RunController.
func NewRunController(s i.Sandbox, logger *zap.Logger) *RunController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RunController{
		sandbox: s,
		logger:  logger,
	}
}

// RegisterPublic registers public routes.
func (rc *RunController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/boards/:name/leaderboard", rc.leaderboard)
}

// RegisterProtected registers protected routes.
func (rc *RunController) RegisterProtected(route *gin.RouterGroup) {
	runs := route.Group("/runs")
	{
		runs.POST("", rc.run)
		runs.GET("", rc.history)
		runs.GET("/:ID", rc.runInfo)
	}
}

// run executes a submitted board.
func (rc *RunController) run(ctx *gin.Context) {
	learner, err := identity.LearnerFrom(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var request RunRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := rc.sandbox.Run(ctx.Request.Context(), i.RunRequest{
		LearnerID:  learner.ID,
		Learner:    learner.Name,
		BoardName:  request.Name,
		Board:      request.Board,
		Engine:     request.Engine,
		Rotation:   request.Rotation,
		StepBudget: request.StepBudget,
	})
	if err != nil {
		if isRequestError(err) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rc.logger.Error("run failed", zap.String("learner", learner.Name), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while running board"})
		return
	}

	ctx.JSON(http.StatusCreated, run)
}

// runInfo retrieves a stored run.
func (rc *RunController) runInfo(ctx *gin.Context) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	run, err := rc.sandbox.ByID(ctx.Request.Context(), ID)
	if err != nil {
		if errors.Is(err, dmn.ErrRunNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		rc.logger.Error("loading run failed", zap.String("run_id", ID.String()), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while loading run"})
		return
	}

	ctx.JSON(http.StatusOK, run)
}

// history lists the caller's latest runs.
func (rc *RunController) history(ctx *gin.Context) {
	learner, err := identity.LearnerFrom(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	limit, ok := limitParam(ctx)
	if !ok {
		return
	}

	runs, err := rc.sandbox.History(ctx.Request.Context(), learner.ID, limit)
	if err != nil {
		rc.logger.Error("loading history failed", zap.String("learner", learner.Name), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while loading runs"})
		return
	}

	ctx.JSON(http.StatusOK, &HistoryResponse{Runs: runs})
}

// leaderboard lists the best standings on a board.
func (rc *RunController) leaderboard(ctx *gin.Context) {
	name := ctx.Params.ByName("name")
	limit, ok := limitParam(ctx)
	if !ok {
		return
	}

	standings, err := rc.sandbox.Leaderboard(ctx.Request.Context(), name, limit)
	if err != nil {
		if errors.Is(err, service.ErrMissingName) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rc.logger.Error("loading leaderboard failed", zap.String("board", name), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while loading leaderboard"})
		return
	}

	ctx.JSON(http.StatusOK, &LeaderboardResponse{Board: name, Standings: standings})
}

func limitParam(ctx *gin.Context) (int64, bool) {
	raw := ctx.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return 0, false
	}
	return limit, true
}

func isRequestError(err error) bool {
	for _, target := range []error{
		service.ErrInvalidBoard,
		service.ErrBoardTooLarge,
		service.ErrUnknownEngine,
		service.ErrInvalidRotation,
		service.ErrInvalidBudget,
		service.ErrMissingName,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
