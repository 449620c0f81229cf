package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/auth"
	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/realtime"
	game "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/application/domain"
	"github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/application/usecase"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/persistence/repository/port"
	roomuc "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/application/usecase"
	roomrepo "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/persistence/repository/port"
)

// CaptureController flips a capture flag and pushes the resulting notices to
// both role channels. The opposing role never sees role-chat content, but
// capture and win notices are shared state both sides observe.
type CaptureController struct {
	registry *realtime.Registry
	publish  *realtime.PublishGuard
	guard    *roomuc.AuthorizeRoomAccessUseCase
	uc       *usecase.ToggleCaptureUseCase
}

func NewCaptureController(games repository.GameRepository, rooms roomrepo.RoomRepository, registry *realtime.Registry, publish *realtime.PublishGuard) *CaptureController {
	return &CaptureController{
		registry: registry,
		publish:  publish,
		guard:    roomuc.NewAuthorizeRoomAccessUseCase(rooms),
		uc:       usecase.NewToggleCaptureUseCase(games),
	}
}

type captureRequest struct {
	TargetID string `json:"targetId" binding:"required"`
	Captured *bool  `json:"captured" binding:"required"`
}

func (h *CaptureController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, ok := postIDParam(c)
		if !ok {
			return
		}
		userID, ok := auth.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req captureRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "targetId and captured are required"})
			return
		}
		targetID, err := uuid.Parse(req.TargetID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "targetId must be a uuid"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		if _, err := h.guard.Execute(ctx, postID, userID); err != nil {
			respondError(c, err)
			return
		}

		unlock := h.publish.Lock(postID)
		result, err := h.uc.Execute(ctx, postID, userID, targetID, *req.Captured)
		if err != nil {
			unlock()
			respondError(c, err)
			return
		}
		h.broadcastNotices(postID, result)
		unlock()

		c.JSON(http.StatusOK, gin.H{
			"postId":     postID.String(),
			"assignment": assignmentJSON(result.Assignment),
			"gameOver":   result.GameOver,
		})
	}
}

// broadcastNotices pushes the capture notice, and the game-over notice when
// the round just ended, to the police and thief channels alike.
func (h *CaptureController) broadcastNotices(postID uuid.UUID, result *usecase.CaptureResult) {
	now := time.Now().UTC()
	notice := realtime.NewSystemEvent(result.Notice, now)
	for _, role := range []game.Role{game.RolePolice, game.RoleThief} {
		key := realtime.RoleChannel{RoomID: postID, Role: string(role)}
		h.registry.BroadcastEvent(key, notice)
		if result.GameOver {
			h.registry.BroadcastEvent(key, realtime.NewSystemEvent(game.GameOverNotice, now))
		}
	}
}
