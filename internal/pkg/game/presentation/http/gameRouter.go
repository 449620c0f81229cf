package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/auth"
	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/realtime"
	gameadapter "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/persistence/repository/adapter"
	"github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/presentation/controller"
	roomadapter "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/persistence/repository/adapter"
)

// RegisterRoutes mounts the role-game endpoints of one room under the given
// group.
func RegisterRoutes(
	g *gin.RouterGroup,
	pool *pgxpool.Pool,
	registry *realtime.Registry,
	publish *realtime.PublishGuard,
	resolver *auth.TokenResolver,
) {
	games := gameadapter.NewPgGameRepository(pool)
	rooms := roomadapter.NewPgRoomRepository(pool)

	assignCtl := controller.NewAssignRolesController(games, rooms)
	myRoleCtl := controller.NewMyRoleController(games, rooms)
	listCtl := controller.NewListRolesController(games, rooms)
	captureCtl := controller.NewCaptureController(games, rooms, registry, publish)
	socketCtl := controller.NewRoleSocketController(games, rooms, resolver, registry, publish)

	authed := g.Group("/posts/:postId/roles", auth.RequireAuth(resolver))
	authed.POST("/assign", assignCtl.Handle())
	authed.GET("/me", myRoleCtl.Handle())
	authed.GET("", listCtl.Handle())
	authed.POST("/capture", captureCtl.Handle())

	// Role chat authenticates via ?token= inside the handler.
	g.GET("/posts/:postId/roles/chat/ws", socketCtl.Handle())
}
