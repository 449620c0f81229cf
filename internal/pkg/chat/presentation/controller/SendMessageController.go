package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/auth"
	qport "github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/queue/port"
	"github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/task"
	"github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/usecase"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/persistence/repository/port"
	roomuc "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/application/usecase"
	roomrepo "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/persistence/repository/port"
)

// SendMessageController appends a message over REST. The live fan-out path is
// the websocket; this endpoint only persists and bumps cursors, so clients
// polling over HTTP see the message on their next history fetch.
type SendMessageController struct {
	guard *roomuc.AuthorizeRoomAccessUseCase
	uc    *usecase.AppendMessageUseCase
	queue qport.Client // optional; summary refresh is best-effort
}

func NewSendMessageController(chats repository.ChatRepository, rooms roomrepo.RoomRepository, queue qport.Client) *SendMessageController {
	return &SendMessageController{
		guard: roomuc.NewAuthorizeRoomAccessUseCase(rooms),
		uc:    usecase.NewAppendMessageUseCase(chats),
		queue: queue,
	}
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
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

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		rm, err := h.guard.Execute(ctx, postID, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		msg, err := h.uc.Execute(ctx, rm, userID, req.Content)
		if err != nil {
			respondError(c, err)
			return
		}

		if h.queue != nil {
			_ = task.EnqueueRefreshSummary(ctx, h.queue, postID)
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":        msg.ID.String(),
			"postId":    msg.RoomID.String(),
			"userId":    msg.AuthorID.String(),
			"content":   msg.Body,
			"createdAt": msg.CreatedAt,
		})
	}
}
