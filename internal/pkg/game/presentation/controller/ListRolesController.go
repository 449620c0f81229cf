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

// ListRolesController returns the active round's full assignment sheet.
type ListRolesController struct {
	guard *roomuc.AuthorizeRoomAccessUseCase
	uc    *usecase.ListRolesUseCase
}

func NewListRolesController(games repository.GameRepository, rooms roomrepo.RoomRepository) *ListRolesController {
	return &ListRolesController{
		guard: roomuc.NewAuthorizeRoomAccessUseCase(rooms),
		uc:    usecase.NewListRolesUseCase(games),
	}
}

func (h *ListRolesController) Handle() gin.HandlerFunc {
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

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		if _, err := h.guard.Execute(ctx, postID, userID); err != nil {
			respondError(c, err)
			return
		}

		assignments, err := h.uc.Execute(ctx, postID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"postId":      postID.String(),
			"assignments": assignmentsJSON(assignments),
		})
	}
}
