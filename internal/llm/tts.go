/**
* Name:         tts.go
* Description:  Google Text-to-Speech for pronunciation playback
 */

package llm

import (
	"context"
	"errors"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

type TTSClient struct {
	client *texttospeech.Client
	log    *logrus.Logger
}

func NewTTSClient(ctx context.Context, credentialsFile string, log *logrus.Logger) (*TTSClient, error) {
	if credentialsFile == "" {
		return nil, errors.New("google credentials file is not set")
	}
	client, err := texttospeech.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("create TTS client: %w", err)
	}
	return &TTSClient{client: client, log: log}, nil
}

// Synthesize renders text as MP3 audio spoken in languageCode (BCP-47, e.g. "fr-FR").
func (t *TTSClient) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCode,
			SsmlGender:   texttospeechpb.SsmlVoiceGender_NEUTRAL,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	resp, err := t.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	t.log.WithFields(logrus.Fields{"language": languageCode, "bytes": len(resp.AudioContent)}).Debug("speech synthesized")
	return resp.AudioContent, nil
}

func (t *TTSClient) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}
