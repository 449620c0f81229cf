package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/AsyncNomad/nolzaGo-back/internal/apperr"
	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/auth"
	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/realtime"
	game "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/application/domain"
	"github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/application/usecase"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/persistence/repository/port"
	roomuc "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/application/usecase"
	roomrepo "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/persistence/repository/port"
)

const socketReadTimeout = 60 * time.Second

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// RoleSocketController handles the websocket endpoint for one role channel of
// a room's round. Admission requires membership AND an active assignment
// matching the requested role; the opposing role can never attach.
type RoleSocketController struct {
	registry *realtime.Registry
	publish  *realtime.PublishGuard
	resolver *auth.TokenResolver

	guard     *roomuc.AuthorizeRoomAccessUseCase
	historyUC *usecase.ListRoleHistoryUseCase
	sendUC    *usecase.SendRoleMessageUseCase

	inflightTimeout time.Duration
}

func NewRoleSocketController(
	games repository.GameRepository,
	rooms roomrepo.RoomRepository,
	resolver *auth.TokenResolver,
	registry *realtime.Registry,
	publish *realtime.PublishGuard,
) *RoleSocketController {
	return &RoleSocketController{
		registry:        registry,
		publish:         publish,
		resolver:        resolver,
		guard:           roomuc.NewAuthorizeRoomAccessUseCase(rooms),
		historyUC:       usecase.NewListRoleHistoryUseCase(games),
		sendUC:          usecase.NewSendRoleMessageUseCase(games),
		inflightTimeout: 5 * time.Second,
	}
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (ctl *RoleSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, ok := postIDParam(c)
		if !ok {
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		userID, err := ctl.resolver.ResolveToken(c.Query("token"))
		if err != nil {
			closeWith(ws, websocket.ClosePolicyViolation, "authentication required")
			return
		}

		role, err := game.ParseRole(c.Query("role"))
		if err != nil {
			closeWith(ws, websocket.ClosePolicyViolation, "unknown role")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
		_, err = ctl.guard.Execute(ctx, postID, userID)
		cancel()
		if err != nil {
			if apperr.CodeOf(err) == apperr.CodeInternal || apperr.CodeOf(err) == apperr.CodeUnknown {
				closeWith(ws, websocket.CloseInternalServerErr, "role channel admission failed")
				return
			}
			closeWith(ws, websocket.ClosePolicyViolation, err.Error())
			return
		}

		ctl.serve(c, ws, postID, userID, role)
	}
}

// serve runs after the membership check passes: role check plus replay, then
// registry attach and the read loop.
func (ctl *RoleSocketController) serve(c *gin.Context, ws *websocket.Conn, postID, userID uuid.UUID, role game.Role) {
	conn := realtime.NewConnection(userID, ws)
	conn.Start()
	key := realtime.RoleChannel{RoomID: postID, Role: string(role)}
	defer func() {
		ctl.registry.Disconnect(key, conn)
		conn.Close(websocket.CloseNormalClosure, "session closed")
	}()

	if !ctl.attachWithHistory(c, conn, key, postID, userID, role) {
		return
	}

	ws.SetReadLimit(1 << 20)
	_ = ws.SetReadDeadline(time.Now().Add(socketReadTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(socketReadTimeout))
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(socketReadTimeout))
		ctl.handleInbound(c, conn, key, postID, role, strings.TrimSpace(string(data)))
	}
}

// attachWithHistory checks role ownership, replays the channel backlog and
// registers the connection, all under the room's publish lock so a role
// message committed during the history query cannot slip between the backlog
// and the live stream. The role check and the history replay share one query
// path. Returns false when the connection should be torn down.
func (ctl *RoleSocketController) attachWithHistory(c *gin.Context, conn *realtime.Connection, key realtime.RoleChannel, postID, userID uuid.UUID, role game.Role) bool {
	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	unlock := ctl.publish.Lock(postID)
	defer unlock()

	history, err := ctl.historyUC.Execute(ctx, postID, userID, role)
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeInternal || apperr.CodeOf(err) == apperr.CodeUnknown {
			conn.Close(websocket.CloseInternalServerErr, "role channel admission failed")
		} else {
			conn.Close(websocket.ClosePolicyViolation, err.Error())
		}
		return false
	}
	payload, err := json.Marshal(realtime.NewHistoryEvent(eventsFromRoleMessages(history)))
	if err != nil || conn.Send(payload) != nil {
		return false
	}
	ctl.registry.Connect(key, conn)
	return true
}

// handleInbound persists and fans out one role-chat frame under the room's
// publish lock. The broadcast stays on this role's channel only.
func (ctl *RoleSocketController) handleInbound(c *gin.Context, conn *realtime.Connection, key realtime.RoleChannel, postID uuid.UUID, role game.Role, body string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	unlock := ctl.publish.Lock(postID)
	defer unlock()

	msg, err := ctl.sendUC.Execute(ctx, postID, conn.UserID, role, body)
	if err != nil {
		replyError(conn, err)
		return
	}
	ctl.registry.BroadcastEvent(key, eventFromRoleMessage(*msg))
}

func replyError(conn *realtime.Connection, err error) {
	frame := errorFrame{Type: "error", Code: string(apperr.CodeOf(err)), Error: err.Error()}
	if payload, mErr := json.Marshal(frame); mErr == nil {
		_ = conn.Send(payload)
	}
}

func closeWith(ws *websocket.Conn, code int, reason string) {
	deadline := time.Now().Add(time.Second)
	_ = ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	_ = ws.Close()
}
