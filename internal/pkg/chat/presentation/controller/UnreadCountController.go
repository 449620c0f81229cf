package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/auth"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/persistence/repository/port"
	roomuc "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/application/usecase"
	roomrepo "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/persistence/repository/port"
)

// UnreadCountController reports the caller's unread counter for a room
// without touching it; clients poll this for badge counts.
type UnreadCountController struct {
	guard *roomuc.AuthorizeRoomAccessUseCase
	chats repository.ChatRepository
}

func NewUnreadCountController(chats repository.ChatRepository, rooms roomrepo.RoomRepository) *UnreadCountController {
	return &UnreadCountController{
		guard: roomuc.NewAuthorizeRoomAccessUseCase(rooms),
		chats: chats,
	}
}

func (h *UnreadCountController) Handle() gin.HandlerFunc {
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

		cur, err := h.chats.GetCursor(ctx, postID, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		// No cursor yet means the user never read or received anything.
		unread := 0
		var lastReadAt any
		if cur != nil {
			unread = cur.UnreadCount
			if cur.LastReadAt != nil {
				lastReadAt = cur.LastReadAt.UTC()
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"postId":     postID.String(),
			"unread":     unread,
			"lastReadAt": lastReadAt,
		})
	}
}
