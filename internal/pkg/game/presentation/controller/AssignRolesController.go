package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/auth"
	"github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/application/usecase"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/persistence/repository/port"
	roomuc "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/application/usecase"
	roomrepo "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/persistence/repository/port"
)

// AssignRolesController starts a fresh round: owner only, replaces every
// prior assignment and wipes role-chat history.
type AssignRolesController struct {
	guard *roomuc.AuthorizeRoomAccessUseCase
	uc    *usecase.AssignRolesUseCase
}

func NewAssignRolesController(games repository.GameRepository, rooms roomrepo.RoomRepository) *AssignRolesController {
	return &AssignRolesController{
		guard: roomuc.NewAuthorizeRoomAccessUseCase(rooms),
		uc:    usecase.NewAssignRolesUseCase(games),
	}
}

type assignRolesRequest struct {
	Police int `json:"police"`
	Thief  int `json:"thief"`
}

func (h *AssignRolesController) Handle() gin.HandlerFunc {
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

		var req assignRolesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "police and thief counts are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		rm, err := h.guard.Execute(ctx, postID, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		assignments, err := h.uc.Execute(ctx, rm, userID, req.Police, req.Thief)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"postId":      postID.String(),
			"assignments": assignmentsJSON(assignments),
		})
	}
}
