package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/auth"
	cacheport "github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/cache/port"
	sumport "github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/summarizer/port"
	"github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/usecase"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/persistence/repository/port"
	roomuc "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/application/usecase"
	roomrepo "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/persistence/repository/port"
)

// ChatSummaryController serves the room's chat digest. Summarizer failures
// surface as placeholder copy with a 200, never as an error status.
type ChatSummaryController struct {
	guard *roomuc.AuthorizeRoomAccessUseCase
	uc    *usecase.SummarizeChatUseCase
}

func NewChatSummaryController(chats repository.ChatRepository, rooms roomrepo.RoomRepository, s sumport.Summarizer, cache cacheport.Cache) *ChatSummaryController {
	return &ChatSummaryController{
		guard: roomuc.NewAuthorizeRoomAccessUseCase(rooms),
		uc:    usecase.NewSummarizeChatUseCase(chats, s, cache),
	}
}

func (h *ChatSummaryController) Handle() gin.HandlerFunc {
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

		summary, count, err := h.uc.Execute(ctx, postID, c.Query("question"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"postId":       postID.String(),
			"summary":      summary,
			"messageCount": count,
		})
	}
}
