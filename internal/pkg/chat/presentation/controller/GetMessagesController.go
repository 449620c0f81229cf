package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/auth"
	"github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/usecase"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/persistence/repository/port"
	roomuc "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/application/usecase"
	roomrepo "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/persistence/repository/port"
)

// GetMessagesController serves a room's chat history. Fetching the history
// also marks the caller's cursor read.
type GetMessagesController struct {
	guard *roomuc.AuthorizeRoomAccessUseCase
	uc    *usecase.ListHistoryUseCase
}

func NewGetMessagesController(chats repository.ChatRepository, rooms roomrepo.RoomRepository) *GetMessagesController {
	return &GetMessagesController{
		guard: roomuc.NewAuthorizeRoomAccessUseCase(rooms),
		uc:    usecase.NewListHistoryUseCase(chats),
	}
}

func (h *GetMessagesController) Handle() gin.HandlerFunc {
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

		msgs, err := h.uc.Execute(ctx, postID, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"postId":   postID.String(),
			"messages": eventsFromMessages(msgs),
			"count":    len(msgs),
		})
	}
}
