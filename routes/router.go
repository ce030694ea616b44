package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/squadup/config"
	"github.com/DhavalSuthar-24/squadup/internal/auth"
	"github.com/DhavalSuthar-24/squadup/internal/event"
	"github.com/DhavalSuthar-24/squadup/internal/invite"
	"github.com/DhavalSuthar-24/squadup/internal/middleware"
	"github.com/DhavalSuthar-24/squadup/internal/team"
	"github.com/DhavalSuthar-24/squadup/internal/user"
	"github.com/DhavalSuthar-24/squadup/pkg/logger"
	"github.com/DhavalSuthar-24/squadup/pkg/mailer"
	"github.com/DhavalSuthar-24/squadup/pkg/notify"
)

// Deps is everything the HTTP layer needs from the process.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Log       *zap.Logger
	Publisher notify.Publisher
	Mailer    mailer.Mailer
}

func SetupRoutes(d Deps) *gin.Engine {
	if !d.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logger.GinLogger(d.Log), logger.GinRecovery(d.Log))
	r.Use(cors.New(corsConfig(d.Config.App.AllowedOrigins)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			d.Log.Warn("readiness check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	users := user.NewUserRepository(d.DB)
	authMW := middleware.AuthMiddleware(d.Config.JWT.AccessTokenSecret, users)
	optionalAuthMW := middleware.OptionalAuthMiddleware(d.Config.JWT.AccessTokenSecret, users)

	rsvp := event.NewRSVPService(d.DB, d.Publisher, d.Log)
	events := event.NewService(d.DB, rsvp, d.Publisher, d.Log)
	teams := team.NewService(d.DB, rsvp, d.Log)
	invites := invite.NewService(d.DB, rsvp, d.Publisher, d.Mailer, d.Log)

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, auth.NewService(users, d.Config.JWT, d.Log), authMW)
	team.TeamRoutes(api, teams, authMW)
	event.EventRoutes(api, events, rsvp, authMW)
	invite.InviteRoutes(api, invite.NewInviteController(invites, d.Config.App.FrontendURL, d.Config.JWT), authMW, optionalAuthMW)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
