package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lianruiying/Language-Tutor/internal/apperrors"
	"github.com/lianruiying/Language-Tutor/internal/tutor"
	"github.com/lianruiying/Language-Tutor/internal/validation"
)

const maxAudioBytes = 10 << 20

type SynthesizeRequest struct {
	Text     string `json:"text" binding:"required,max=5000" example:"Bonjour, comment ça va ?"`
	Language string `json:"language" binding:"required" example:"french"`
}

type TranscriptResponse struct {
	Transcript string `json:"transcript" example:"bonjour comment ça va"`
}

// Synthesize godoc
// @Summary      Read text aloud
// @Tags         Speech
// @Accept       json
// @Produce      audio/mpeg
// @Security     BearerAuth
// @Param        request body handler.SynthesizeRequest true "Text and language"
// @Success      200 {file}   file "MP3 audio"
// @Failure      400 {object} handler.ErrorResponse "Unsupported language"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/speech/synthesize [post]
func (h *Handler) Synthesize(c *gin.Context) {
	var req SynthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, validation.Translate(err))
		return
	}
	lang, ok := tutor.LookupLanguage(req.Language)
	if !ok {
		apperrors.Respond(c, apperrors.BadRequest("Unsupported language"))
		return
	}

	audio, err := h.tts.Synthesize(c.Request.Context(), req.Text, lang.SpeechCode)
	if err != nil {
		apperrors.Respond(c, apperrors.Wrap(err, apperrors.KindInternal, "Speech synthesis failed"))
		return
	}
	c.Data(http.StatusOK, "audio/mpeg", audio)
}

// Transcribe godoc
// @Summary      Transcribe a spoken answer
// @Description  Body is raw LINEAR16 audio, 16 kHz mono, at most 10 MB.
// @Tags         Speech
// @Accept       application/octet-stream
// @Produce      json
// @Security     BearerAuth
// @Param        language query string true "Spoken language"
// @Success      200 {object} handler.TranscriptResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/speech/transcribe [post]
func (h *Handler) Transcribe(c *gin.Context) {
	lang, ok := tutor.LookupLanguage(c.Query("language"))
	if !ok {
		apperrors.Respond(c, apperrors.BadRequest("Unsupported language"))
		return
	}

	audio, err := io.ReadAll(io.LimitReader(c.Request.Body, maxAudioBytes+1))
	if err != nil {
		apperrors.Respond(c, apperrors.Wrap(err, apperrors.KindBadRequest, "Failed to read audio"))
		return
	}
	switch {
	case len(audio) == 0:
		apperrors.Respond(c, apperrors.BadRequest("Audio body is empty"))
		return
	case len(audio) > maxAudioBytes:
		apperrors.Respond(c, apperrors.BadRequest("Audio body is larger than 10 MB"))
		return
	}

	transcript, err := h.stt.Transcribe(c.Request.Context(), audio, lang.SpeechCode)
	if err != nil {
		apperrors.Respond(c, apperrors.Wrap(err, apperrors.KindInternal, "Speech recognition failed"))
		return
	}
	c.JSON(http.StatusOK, TranscriptResponse{Transcript: transcript})
}
