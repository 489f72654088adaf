/**
* Name:         stt.go
* Description:  Google Speech-to-Text for spoken answers
* Workflow:     LINEAR16 16kHz mono clip in, best transcript out
 */

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

const SpeechSampleRate = 16000

type STTClient struct {
	client *speech.Client
	log    *logrus.Logger
}

func NewSTTClient(ctx context.Context, credentialsFile string, log *logrus.Logger) (*STTClient, error) {
	if credentialsFile == "" {
		return nil, errors.New("google credentials file is not set")
	}
	client, err := speech.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}
	return &STTClient{client: client, log: log}, nil
}

// Transcribe recognizes a short clip. Results are joined with spaces.
func (r *STTClient) Transcribe(ctx context.Context, audio []byte, languageCode string) (string, error) {
	resp, err := r.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   SpeechSampleRate,
			AudioChannelCount: 1,
			LanguageCode:      languageCode,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("recognize speech: %w", err)
	}

	parts := make([]string, 0, len(resp.Results))
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		parts = append(parts, strings.TrimSpace(result.Alternatives[0].Transcript))
	}
	transcript := strings.Join(parts, " ")
	r.log.WithFields(logrus.Fields{"language": languageCode, "chars": len(transcript)}).Debug("speech recognized")
	return transcript, nil
}

func (r *STTClient) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
