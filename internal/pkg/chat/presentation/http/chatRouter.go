package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/auth"
	cacheport "github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/cache/port"
	qport "github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/queue/port"
	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/realtime"
	sumport "github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/summarizer/port"
	chatadapter "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/persistence/repository/adapter"
	"github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/presentation/controller"
	roomadapter "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/persistence/repository/adapter"
	useradapter "github.com/AsyncNomad/nolzaGo-back/internal/repository/adapter"
)

// RegisterRoutes mounts the chat endpoints of one room under the given group.
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(
	g *gin.RouterGroup,
	pool *pgxpool.Pool,
	queue qport.Client,
	registry *realtime.Registry,
	publish *realtime.PublishGuard,
	resolver *auth.TokenResolver,
	summarizer sumport.Summarizer,
	cache cacheport.Cache,
) {
	chats := chatadapter.NewPgChatRepository(pool)
	rooms := roomadapter.NewPgRoomRepository(pool)
	users := useradapter.NewPgUserRepository(pool)

	getCtl := controller.NewGetMessagesController(chats, rooms)
	sendCtl := controller.NewSendMessageController(chats, rooms, queue)
	summaryCtl := controller.NewChatSummaryController(chats, rooms, summarizer, cache)
	unreadCtl := controller.NewUnreadCountController(chats, rooms)
	socketCtl := controller.NewChatSocketController(chats, rooms, users, resolver, registry, publish)

	authed := g.Group("/posts/:postId/chat", auth.RequireAuth(resolver))
	authed.GET("/messages", getCtl.Handle())
	authed.POST("/messages", sendCtl.Handle())
	authed.GET("/summary", summaryCtl.Handle())
	authed.GET("/unread", unreadCtl.Handle())

	// The socket authenticates via ?token= inside the handler; browsers cannot
	// set headers on websocket upgrades.
	g.GET("/posts/:postId/chat/ws", socketCtl.Handle())
}
