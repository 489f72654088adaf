package handler

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/lianruiying/Language-Tutor/internal/auth"
	"github.com/lianruiying/Language-Tutor/internal/config"
	"github.com/lianruiying/Language-Tutor/internal/service"
	"github.com/lianruiying/Language-Tutor/internal/tutor"
)

type Synthesizer interface {
	Synthesize(ctx context.Context, text, languageCode string) ([]byte, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, languageCode string) (string, error)
}

// Handler serves every HTTP and websocket endpoint.
type Handler struct {
	cfg      *config.Config
	users    *service.UserService
	learning *service.LearningService
	tutor    *tutor.Service
	tokens   *auth.TokenManager
	tts      Synthesizer
	stt      Transcriber
	log      *logrus.Logger
}

type Deps struct {
	Config   *config.Config
	Users    *service.UserService
	Learning *service.LearningService
	Tutor    *tutor.Service
	Tokens   *auth.TokenManager
	TTS      Synthesizer // optional
	STT      Transcriber // optional
	Log      *logrus.Logger
}

func New(d Deps) *Handler {
	return &Handler{
		cfg:      d.Config,
		users:    d.Users,
		learning: d.Learning,
		tutor:    d.Tutor,
		tokens:   d.Tokens,
		tts:      d.TTS,
		stt:      d.STT,
		log:      d.Log,
	}
}

// Shared response bodies.

type ErrorResponse struct {
	Detail string            `json:"detail" example:"Incorrect username or password"`
	Fields map[string]string `json:"fields,omitempty"`
}

type StatusResponse struct {
	Status        string `json:"status" example:"ok"`
	Message       string `json:"message" example:"Server is running"`
	APIConfigured *bool  `json:"api_configured,omitempty"`
}
