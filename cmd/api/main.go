package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lianruiying/Language-Tutor/internal/config"
	"github.com/lianruiying/Language-Tutor/internal/llm"
	"github.com/lianruiying/Language-Tutor/internal/logging"
	"github.com/lianruiying/Language-Tutor/internal/server"
	"github.com/lianruiying/Language-Tutor/internal/storage"
)

// @title						Language Tutor API
// @version					1.0
// @description				Accounts, learning profiles and an LLM-backed language tutor.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and the access token.
func main() {
	cfg, err := config.Load("")
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := storage.Open(cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	defer func() {
		if err := storage.Close(db); err != nil {
			log.WithError(err).Warn("close database")
		}
	}()

	if !cfg.LLMConfigured() {
		log.Warn("no LLM API key configured, /api/chat will fail until one is set")
	}

	deps := server.Deps{
		Config: cfg,
		DB:     db,
		Log:    log,
		LLM:    llm.NewClient(cfg.LLM, log),
	}

	if cfg.SpeechEnabled() {
		ctx := context.Background()
		tts, err := llm.NewTTSClient(ctx, cfg.Speech.CredentialsFile, log)
		if err != nil {
			log.WithError(err).Fatal("create text-to-speech client")
		}
		defer tts.Close()
		stt, err := llm.NewSTTClient(ctx, cfg.Speech.CredentialsFile, log)
		if err != nil {
			log.WithError(err).Fatal("create speech-to-text client")
		}
		defer stt.Close()
		deps.TTS, deps.STT = tts, stt
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port": cfg.Server.Port,
			"env":  cfg.Server.Env,
		}).Infof("%s listening", config.ProjectName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
