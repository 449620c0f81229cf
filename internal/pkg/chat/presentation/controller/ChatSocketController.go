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
	"github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/usecase"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/persistence/repository/port"
	room "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/application/domain"
	roomuc "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/application/usecase"
	roomrepo "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/persistence/repository/port"
	userrepo "github.com/AsyncNomad/nolzaGo-back/internal/repository/port"
)

const socketReadTimeout = 60 * time.Second

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when auth is added.
		return true
	},
}

// ChatSocketController handles the websocket endpoint for a room's chat
// channel: admission, history replay, the join announcement and the
// receive-persist-broadcast loop.
type ChatSocketController struct {
	registry *realtime.Registry
	publish  *realtime.PublishGuard
	resolver *auth.TokenResolver
	users    userrepo.UserRepository

	guard      *roomuc.AuthorizeRoomAccessUseCase
	historyUC  *usecase.ListHistoryUseCase
	appendUC   *usecase.AppendMessageUseCase
	announceUC *usecase.AnnounceJoinUseCase

	inflightTimeout time.Duration
}

func NewChatSocketController(
	chats repository.ChatRepository,
	rooms roomrepo.RoomRepository,
	users userrepo.UserRepository,
	resolver *auth.TokenResolver,
	registry *realtime.Registry,
	publish *realtime.PublishGuard,
) *ChatSocketController {
	return &ChatSocketController{
		registry:        registry,
		publish:         publish,
		resolver:        resolver,
		users:           users,
		guard:           roomuc.NewAuthorizeRoomAccessUseCase(rooms),
		historyUC:       usecase.NewListHistoryUseCase(chats),
		appendUC:        usecase.NewAppendMessageUseCase(chats),
		announceUC:      usecase.NewAnnounceJoinUseCase(chats),
		inflightTimeout: 5 * time.Second,
	}
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

// Handle upgrades the connection, admits it to the room channel and pumps
// inbound text frames until the client disconnects. Each inbound frame's raw
// text is the message body.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, ok := postIDParam(c)
		if !ok {
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just return.
			return
		}

		// Token and membership failures close with a policy violation so the
		// client can distinguish them from transport errors.
		userID, err := ctl.resolver.ResolveToken(c.Query("token"))
		if err != nil {
			closeWith(ws, websocket.ClosePolicyViolation, "authentication required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
		rm, err := ctl.guard.Execute(ctx, postID, userID)
		cancel()
		if err != nil {
			if apperr.CodeOf(err) == apperr.CodeInternal || apperr.CodeOf(err) == apperr.CodeUnknown {
				closeWith(ws, websocket.CloseInternalServerErr, "room lookup failed")
				return
			}
			closeWith(ws, websocket.ClosePolicyViolation, err.Error())
			return
		}

		conn := realtime.NewConnection(userID, ws)
		conn.Start()
		key := realtime.RoomChannel{RoomID: postID}
		defer func() {
			ctl.registry.Disconnect(key, conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		profile := ctl.lookupProfile(c, userID)

		if !ctl.admitWithHistory(c, conn, key, postID) {
			return
		}

		ctl.announceJoin(c, key, rm, userID, profile.DisplayName)

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
			ctl.handleInbound(c, conn, key, rm, profile, strings.TrimSpace(string(data)))
		}
	}
}

// handleInbound persists the frame and broadcasts it under the room's publish
// lock, so concurrent senders commit and fan out in the same order.
func (ctl *ChatSocketController) handleInbound(c *gin.Context, conn *realtime.Connection, key realtime.RoomChannel, rm *room.Room, profile userrepo.Profile, body string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	unlock := ctl.publish.Lock(rm.ID)
	defer unlock()

	msg, err := ctl.appendUC.Execute(ctx, rm, conn.UserID, body)
	if err != nil {
		replyError(conn, err)
		return
	}
	event := realtime.NewChatEvent(conn.UserID.String(), profile.DisplayName, profile.ProfileImageURL, msg.Body, msg.CreatedAt)
	ctl.registry.BroadcastEvent(key, event)
}

// admitWithHistory replays the backlog and registers the connection under the
// room's publish lock, so a message committed while the history query runs
// cannot slip between the backlog and the live stream. The replay reads
// anonymously; read cursors move only on explicit message reads and sends,
// never on a bare (re)connect. Returns false when the connection should be
// torn down.
func (ctl *ChatSocketController) admitWithHistory(c *gin.Context, conn *realtime.Connection, key realtime.RoomChannel, postID uuid.UUID) bool {
	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	unlock := ctl.publish.Lock(postID)
	defer unlock()

	msgs, err := ctl.historyUC.Execute(ctx, postID, uuid.Nil)
	if err != nil {
		conn.Close(websocket.CloseInternalServerErr, "history replay failed")
		return false
	}
	payload, err := json.Marshal(realtime.NewHistoryEvent(eventsFromMessages(msgs)))
	if err != nil {
		conn.Close(websocket.CloseInternalServerErr, "history replay failed")
		return false
	}
	if conn.Send(payload) != nil {
		return false
	}
	ctl.registry.Connect(key, conn)
	return true
}

// announceJoin emits the one-time join notice under the publish lock so it
// lands between history and any message the client sends right after connect.
func (ctl *ChatSocketController) announceJoin(c *gin.Context, key realtime.RoomChannel, rm *room.Room, userID uuid.UUID, displayName *string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	unlock := ctl.publish.Lock(rm.ID)
	defer unlock()

	msg, err := ctl.announceUC.Execute(ctx, rm, userID, displayName)
	if err != nil || msg == nil {
		return
	}
	ctl.registry.BroadcastEvent(key, realtime.NewSystemEvent(msg.Body, msg.CreatedAt))
}

// lookupProfile tolerates a missing profile; envelopes then carry nil author
// metadata and the join notice falls back to its generic name.
func (ctl *ChatSocketController) lookupProfile(c *gin.Context, userID uuid.UUID) userrepo.Profile {
	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	p, err := ctl.users.GetProfile(ctx, userID)
	if err != nil || p == nil {
		return userrepo.Profile{ID: userID}
	}
	return *p
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
