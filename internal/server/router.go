package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/lianruiying/Language-Tutor/docs"
	"github.com/lianruiying/Language-Tutor/internal/auth"
	"github.com/lianruiying/Language-Tutor/internal/config"
	"github.com/lianruiying/Language-Tutor/internal/handler"
	"github.com/lianruiying/Language-Tutor/internal/middleware"
	"github.com/lianruiying/Language-Tutor/internal/service"
	"github.com/lianruiying/Language-Tutor/internal/storage"
	"github.com/lianruiying/Language-Tutor/internal/tutor"
	"github.com/lianruiying/Language-Tutor/internal/validation"
)

// Deps are the outside resources the router is built from.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *logrus.Logger
	LLM    tutor.Completer
	TTS    handler.Synthesizer // nil disables /api/speech/synthesize
	STT    handler.Transcriber // nil disables /api/speech/transcribe
}

// NewRouter wires services and handlers and registers every route.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	validation.RegisterGin()

	store := storage.NewStore(d.DB)
	users := service.NewUserService(store, d.Log)
	tokens := auth.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.AccessTokenTTL)
	h := handler.New(handler.Deps{
		Config:   cfg,
		Users:    users,
		Learning: service.NewLearningService(store, d.Log),
		Tutor:    tutor.NewService(d.LLM, d.Log),
		Tokens:   tokens,
		TTS:      d.TTS,
		STT:      d.STT,
		Log:      d.Log,
	})

	router := gin.New()
	_ = router.SetTrustedProxies(nil)
	router.Use(
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			d.Log.WithField("panic", recovered).Error("handler panicked")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}),
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		cors.New(corsConfig(cfg.Server.AllowedOrigins)),
	)

	router.GET("/", h.Root)
	router.GET("/test", h.Test)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireUser := middleware.AuthMiddleware(tokens, users)

	v1 := router.Group(config.APIV1Prefix)
	v1.POST("/auth/login", middleware.RateLimit(cfg.RateLimit.LoginPerMinute), h.Login)

	usersGroup := v1.Group("/users")
	usersGroup.POST("/", middleware.InviteCodeMiddleware(cfg.Auth.InviteCode), h.CreateUser)

	protected := usersGroup.Group("", requireUser)
	{
		protected.GET("/", middleware.SuperuserOnly(), h.ListUsers)
		protected.GET("/me", h.GetMe)
		protected.PUT("/me", h.UpdateMe)
		protected.GET("/profile", h.GetProfile)
		protected.PUT("/profile", h.UpdateProfile)
		protected.GET("/history", h.GetHistory)
		protected.POST("/history", h.RecordActivity)
		protected.GET("/vocabulary", h.ListWords)
		protected.POST("/vocabulary", h.AddWord)
		protected.GET("/:id", h.GetUser)
	}

	router.POST("/api/chat", middleware.RateLimit(cfg.RateLimit.ChatPerMinute), h.Chat)
	router.GET("/ws/chat", h.HandleChatConnection)

	speech := router.Group("/api/speech", requireUser)
	if d.TTS != nil {
		speech.POST("/synthesize", h.Synthesize)
	}
	if d.STT != nil {
		speech.POST("/transcribe", h.Transcribe)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", middleware.InviteCodeHeader, middleware.RequestIDHeader)
	c.ExposeHeaders = []string{middleware.RequestIDHeader}
	return c
}
