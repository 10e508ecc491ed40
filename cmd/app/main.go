package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"yatra/cmd/fx/account_fx"
	"yatra/cmd/fx/ai_fx"
	"yatra/cmd/fx/analytics_fx"
	"yatra/cmd/fx/chat_fx"
	"yatra/cmd/fx/config_fx"
	"yatra/cmd/fx/controllers_fx"
	"yatra/cmd/fx/db_fx"
	"yatra/cmd/fx/destination_fx"
	"yatra/cmd/fx/itinerary_fx"
	"yatra/cmd/fx/mail_fx"
	"yatra/cmd/fx/memcache_fx"
	"yatra/cmd/fx/profile_fx"
	"yatra/cmd/fx/redis_fx"
	"yatra/internal/api/controllers"
	"yatra/internal/models/db_models"
	"yatra/internal/realtime"
	"yatra/pkg/config"
	"yatra/pkg/logger"
	"yatra/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		redis_fx.Module,
		memcache_fx.Module,
		ai_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		destination_fx.Module,
		profile_fx.Module,
		itinerary_fx.Module,
		chat_fx.Module,
		analytics_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *logger.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting HTTP server", "port", cfg.Port, "env", cfg.Environment)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

type routerParams struct {
	fx.In

	Config     config.Config
	Log        *logger.Logger
	Auth       *middleware.Auth
	Limiter    memcache_fx.ChatLimiter
	GenLimiter memcache_fx.GenerationLimiter
	Hub        *realtime.Hub

	Health       *controllers.HealthController
	AuthCtl      *controllers.AuthController
	Destinations *controllers.DestinationController
	Profile      *controllers.ProfileController
	Itinerary    *controllers.ItineraryController
	Chat         *controllers.ChatController
	Admin        *controllers.AdminController
}

func ProvideRouter(p routerParams) *gin.Engine {
	if p.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Log))
	r.Use(middleware.CORS(p.Config.CorsOrigins))

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p routerParams) {
	auth := p.Auth.JWTAuthMiddleware()
	staff := middleware.RoleMiddleware(db_models.RoleAgent, db_models.RoleAdmin)
	admin := middleware.RoleMiddleware(db_models.RoleAdmin)

	api := r.Group("/api")
	api.GET("/health", p.Health.Health)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", p.AuthCtl.Register)
	authGroup.POST("/login", p.AuthCtl.Login)
	authGroup.GET("/profile", auth, p.AuthCtl.GetProfile)
	authGroup.PUT("/profile", auth, p.AuthCtl.UpdateProfile)
	authGroup.PUT("/change-password", auth, p.AuthCtl.ChangePassword)
	authGroup.POST("/logout", auth, p.AuthCtl.Logout)

	destinations := api.Group("/destinations")
	destinations.GET("", p.Destinations.List)
	destinations.GET("/nearby", p.Destinations.Nearby)
	destinations.GET("/:id", p.Destinations.Get)
	destinations.POST("", auth, admin, p.Destinations.Create)

	profile := api.Group("/profile", auth)
	profile.GET("", p.Profile.Get)
	profile.PUT("", p.Profile.Update)
	profile.PUT("/preferences", p.Profile.UpdatePreferences)
	profile.GET("/visited-destinations", p.Profile.ListVisited)
	profile.POST("/visited-destinations", p.Profile.AddVisited)
	profile.GET("/recommendations", p.Profile.Recommendations)
	profile.POST("/track-search", p.Profile.TrackSearch)

	itinerary := api.Group("/itinerary", auth)
	itinerary.GET("/popular", p.Itinerary.Popular)
	itinerary.POST("/generate", p.GenLimiter.Limit(), p.Itinerary.Generate)
	itinerary.GET("/my-itineraries", p.Itinerary.ListMine)
	itinerary.GET("/:id", p.Itinerary.Get)
	itinerary.PUT("/:id", p.Itinerary.Update)
	itinerary.DELETE("/:id", p.Itinerary.Delete)
	itinerary.POST("/:id/feedback", p.Itinerary.SubmitFeedback)
	itinerary.GET("/:id/export", p.Itinerary.Export)

	chat := api.Group("/chat", p.Limiter.Limit())
	chat.POST("/initialize", p.Auth.OptionalAuth(), p.Chat.Initialize)
	chat.POST("/message", p.Chat.SendMessage)
	chat.GET("/session/:sessionId/history", p.Chat.History)
	chat.GET("/faq/suggestions", p.Chat.FAQSuggestions)
	chat.POST("/session/:sessionId/end", auth, p.Chat.End)
	chat.POST("/session/:sessionId/assign", auth, staff, p.Chat.AssignAgent)
	chat.GET("/admin/sessions", auth, admin, p.Admin.ListSessions)
	chat.GET("/admin/analytics", auth, admin, p.Admin.Analytics)

	r.GET("/ws/chat", func(c *gin.Context) {
		p.Hub.ServeWS(c.Writer, c.Request)
	})
}
