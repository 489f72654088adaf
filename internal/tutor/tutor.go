package tutor

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/lianruiying/Language-Tutor/internal/apperrors"
	"github.com/lianruiying/Language-Tutor/internal/llm"
)

const MaxMessageLength = 4000

// Completer is the upstream chat model.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

type Service struct {
	llm Completer
	log *logrus.Logger
}

func NewService(llm Completer, log *logrus.Logger) *Service {
	return &Service{llm: llm, log: log}
}

// Reply forwards message to the model behind the fixed tutor prompt and
// returns the answer without reasoning blocks. language is only a hint.
func (s *Service) Reply(ctx context.Context, message, language string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", apperrors.BadRequest("Message must not be empty")
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return "", apperrors.BadRequest("Message is too long")
	}

	fields := logrus.Fields{"language": language}
	if lang, ok := LookupLanguage(language); ok {
		fields["language_name"] = lang.Name
	}

	raw, err := s.llm.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: SystemPrompt},
		{Role: llm.RoleUser, Content: message},
	})
	if err != nil {
		s.log.WithFields(fields).WithError(err).Error("chat request failed")
		return "", apperrors.Wrap(err, apperrors.KindInternal, "Chat request failed: "+err.Error())
	}

	reply := StripThinking(raw)
	fields["response_length"] = utf8.RuneCountInString(reply)
	s.log.WithFields(fields).Info("chat answered")
	return reply, nil
}
