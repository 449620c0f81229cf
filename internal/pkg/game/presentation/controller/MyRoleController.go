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

// MyRoleController reports the caller's assignment in the active round.
// Holding no role is a normal answer, not an error.
type MyRoleController struct {
	guard *roomuc.AuthorizeRoomAccessUseCase
	uc    *usecase.MyRoleUseCase
}

func NewMyRoleController(games repository.GameRepository, rooms roomrepo.RoomRepository) *MyRoleController {
	return &MyRoleController{
		guard: roomuc.NewAuthorizeRoomAccessUseCase(rooms),
		uc:    usecase.NewMyRoleUseCase(games),
	}
}

func (h *MyRoleController) Handle() gin.HandlerFunc {
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

		assignment, err := h.uc.Execute(ctx, postID, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if assignment == nil {
			c.JSON(http.StatusOK, gin.H{"postId": postID.String(), "assignment": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"postId": postID.String(), "assignment": assignmentJSON(*assignment)})
	}
}
