package http

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"uptask/internal/accounts"
	"uptask/internal/adapters/realtime"
	"uptask/internal/auth"
	"uptask/internal/config"
	"uptask/internal/core"
	transport "uptask/internal/transport/http"
)

// SessionTokenMiddleware gives every browser a stable token via the
// cookie session. It identifies the browser, not a connection: the
// realtime channel mints its own per-connection session ids and uses
// this token only to correlate one user's connections in the logs.
func SessionTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Default(c)
		token, _ := s.Get("st").(string)
		if token == "" {
			token = uuid.NewString()
			s.Set("st", token)
			if err := s.Save(); err != nil {
				log.Error().Err(err).Str("module", "adapters.http").Msg("save session")
			}
		}
		c.Set("session_token", token)
		c.Next()
	}
}

// Services bundles what the router wires to routes.
type Services struct {
	Accounts *accounts.Service
	Projects *core.ProjectService
	Collab   *core.CollabService
	Tasks    *core.TaskService
	Issuer   *auth.Issuer
	Users    core.UserStore
	Realtime *realtime.Controller
}

func SetupRouter(ctx context.Context, cfg *config.Config, svc Services) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	if cfg.FrontendURL != "" {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = []string{cfg.FrontendURL}
		corsCfg.AllowCredentials = true
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		r.Use(cors.New(corsCfg))
	}

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("UpTaskSessions", store))
	r.Use(SessionTokenMiddleware())

	log.Info().Str("module", "adapters.http").Str("frontend", cfg.FrontendURL).Msg("router setup")

	users := transport.UserHandlers{Accounts: svc.Accounts}
	projects := transport.ProjectHandlers{Projects: svc.Projects, Collab: svc.Collab}
	tasks := transport.TaskHandlers{Tasks: svc.Tasks}

	requireUser := auth.RequireUser(svc.Issuer, svc.Users)

	api := r.Group("/api")

	u := api.Group("/users")
	u.POST("", users.Register)
	u.GET("/confirm/:token", users.Confirm)
	u.POST("/login", users.Login)
	u.POST("/forgot-password", users.Forgot)
	u.GET("/forgot-password/:token", users.CheckResetToken)
	u.POST("/forgot-password/:token", users.Reset)
	u.GET("/profile", requireUser, users.Profile)

	p := api.Group("/projects", requireUser)
	p.GET("", projects.List)
	p.POST("", projects.Create)
	p.GET("/:id", projects.Get)
	p.PUT("/:id", projects.Edit)
	p.DELETE("/:id", projects.Delete)
	p.POST("/collaborators", projects.SearchCollaborator)
	p.POST("/:id/collaborators", projects.AddCollaborator)
	p.DELETE("/:id/collaborators", projects.RemoveCollaborator)

	t := api.Group("/tasks", requireUser)
	t.POST("", tasks.Create)
	t.GET("/:id", tasks.Get)
	t.PUT("/:id", tasks.Edit)
	t.DELETE("/:id", tasks.Delete)
	t.POST("/:id/state", tasks.Toggle)

	r.GET("/ws", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("sid", c.GetString("session_token")).Msg("ws endpoint hit")
		svc.Realtime.HandleWS(ctx, c)
	})

	return r
}
