package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AsyncNomad/nolzaGo-back/internal/apperr"
	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/realtime"
	chat "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/domain"
)

const requestTimeout = 5 * time.Second

// postIDParam parses the :postId path segment, writing the 400 itself on
// failure.
func postIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postId must be a uuid"})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps an application error onto the REST surface.
func respondError(c *gin.Context, err error) {
	var ae *apperr.AppError
	if errors.As(err, &ae) {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": ae.Message, "code": string(ae.Code)})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// eventFromMessage renders a stored chat row as its wire envelope. Rows whose
// body carries the join marker surface as authorless system entries even
// though they are stored under the joining user's id.
func eventFromMessage(m chat.ChatMessage) realtime.Event {
	if m.IsSystem() {
		return realtime.NewSystemEvent(m.Body, m.CreatedAt)
	}
	return realtime.NewChatEvent(m.AuthorID.String(), m.AuthorDisplayName, m.AuthorProfileImageURL, m.Body, m.CreatedAt)
}

func eventsFromMessages(msgs []chat.ChatMessage) []realtime.Event {
	events := make([]realtime.Event, 0, len(msgs))
	for _, m := range msgs {
		events = append(events, eventFromMessage(m))
	}
	return events
}
