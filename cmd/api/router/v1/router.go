package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/auth"
	cacheport "github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/cache/port"
	qport "github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/queue/port"
	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/realtime"
	sumport "github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/summarizer/port"
	chathttp "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/presentation/http"
	gamehttp "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/presentation/http"
)

// Deps carries the shared infrastructure handed down to every bounded
// context's router.
type Deps struct {
	Pool       *pgxpool.Pool
	Queue      qport.Client
	Registry   *realtime.Registry
	Publish    *realtime.PublishGuard
	Resolver   *auth.TokenResolver
	Summarizer sumport.Summarizer
	Cache      cacheport.Cache
}

// RegisterRoutes mounts all version 1 API routes under /api/v1.
func RegisterRoutes(r *gin.Engine, deps Deps) {
	v1 := r.Group("/api/v1")
	chathttp.RegisterRoutes(v1, deps.Pool, deps.Queue, deps.Registry, deps.Publish, deps.Resolver, deps.Summarizer, deps.Cache)
	gamehttp.RegisterRoutes(v1, deps.Pool, deps.Registry, deps.Publish, deps.Resolver)
}
