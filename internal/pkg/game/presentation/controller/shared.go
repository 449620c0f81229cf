package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AsyncNomad/nolzaGo-back/internal/apperr"
	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/realtime"
	game "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/application/domain"
)

const requestTimeout = 5 * time.Second

func postIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postId must be a uuid"})
		return uuid.Nil, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	var ae *apperr.AppError
	if errors.As(err, &ae) {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": ae.Message, "code": string(ae.Code)})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func assignmentJSON(a game.Assignment) gin.H {
	return gin.H{
		"userId":              a.UserID.String(),
		"role":                string(a.Role),
		"captured":            a.Captured,
		"userDisplayName":     a.UserDisplayName,
		"userProfileImageUrl": a.UserProfileImageURL,
	}
}

func assignmentsJSON(as []game.Assignment) []gin.H {
	out := make([]gin.H, 0, len(as))
	for _, a := range as {
		out = append(out, assignmentJSON(a))
	}
	return out
}

// eventFromRoleMessage renders a stored role-chat row as its wire envelope,
// tagged with the channel's role.
func eventFromRoleMessage(m game.RoleMessage) realtime.Event {
	e := realtime.NewChatEvent(m.UserID.String(), m.UserDisplayName, m.UserProfileImageURL, m.Body, m.CreatedAt)
	e.Role = string(m.Role)
	return e
}

func eventsFromRoleMessages(msgs []game.RoleMessage) []realtime.Event {
	events := make([]realtime.Event, 0, len(msgs))
	for _, m := range msgs {
		events = append(events, eventFromRoleMessage(m))
	}
	return events
}
