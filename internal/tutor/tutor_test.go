package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lianruiying/Language-Tutor/internal/apperrors"
	"github.com/lianruiying/Language-Tutor/internal/llm"
)

type fakeCompleter struct {
	reply string
	err   error
	got   []llm.Message
}

func (f *fakeCompleter) Complete(_ context.Context, messages []llm.Message) (string, error) {
	f.got = messages
	return f.reply, f.err
}

func TestStripThinking(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no block", "Hello", "Hello"},
		{"leading block", "<think>reasoning\nmore</think>\n\nBonjour", "Bonjour"},
		{"two blocks", "a<think>x</think>b<think>y</think>c", "abc"},
		{"unterminated", "Answer first <think>never closed", "Answer first"},
		{"stray close", "</think>Hola", "Hola"},
		{"spliced open", "<thi<think>x</think>nk>tail", ""},
		{"spliced by close", "<thi</think>nk>secret</think>ok", ""},
		{"only thinking", "<think>all of it</think>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripThinking(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "<think>")
		})
	}
}

func TestStripThinking_NeverLeavesTag(t *testing.T) {
	pieces := []string{"<think>", "</think>", "<thi", "nk>", "</thi", "<", ">", "think", "a", "\n"}
	// every sequence of four pieces
	var walk func(prefix string, depth int)
	walk = func(prefix string, depth int) {
		if depth == 0 {
			assert.NotContains(t, StripThinking(prefix), "<think>", "input %q", prefix)
			return
		}
		for _, p := range pieces {
			walk(prefix+p, depth-1)
		}
	}
	walk("", 4)
}

func TestReply(t *testing.T) {
	log, hook := test.NewNullLogger()
	fake := &fakeCompleter{reply: "<think>plan</think>\nLe chat dort."}
	svc := NewService(fake, log)

	out, err := svc.Reply(context.Background(), "  Give me a French sentence  ", "fr")
	require.NoError(t, err)
	assert.Equal(t, "Le chat dort.", out)

	require.Len(t, fake.got, 2)
	assert.Equal(t, llm.RoleSystem, fake.got[0].Role)
	assert.Equal(t, SystemPrompt, fake.got[0].Content)
	assert.Equal(t, "Give me a French sentence", fake.got[1].Content)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "French", entry.Data["language_name"])
	assert.Equal(t, len("Le chat dort."), entry.Data["response_length"])
	for _, v := range entry.Data {
		assert.NotEqual(t, "Give me a French sentence", v, "message content is never logged")
	}
}

func TestReply_UpstreamFailure(t *testing.T) {
	log, _ := test.NewNullLogger()
	svc := NewService(&fakeCompleter{err: errors.New("LLM chat failed with status 401: invalid key")}, log)

	_, err := svc.Reply(context.Background(), "hello", "english")
	require.Error(t, err)
	appErr := apperrors.From(err)
	assert.Equal(t, apperrors.KindInternal, appErr.Kind)
	assert.Contains(t, appErr.Detail, "invalid key")
}

func TestReply_Validation(t *testing.T) {
	log, _ := test.NewNullLogger()
	fake := &fakeCompleter{reply: "x"}
	svc := NewService(fake, log)

	_, err := svc.Reply(context.Background(), "   ", "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindBadRequest))

	_, err = svc.Reply(context.Background(), strings.Repeat("a", MaxMessageLength+1), "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindBadRequest))
	assert.Nil(t, fake.got, "invalid messages never reach the model")
}

func TestLookupLanguage(t *testing.T) {
	lang, ok := LookupLanguage(" French ")
	require.True(t, ok)
	assert.Equal(t, "fr-FR", lang.SpeechCode)

	lang, ok = LookupLanguage("ja")
	require.True(t, ok)
	assert.Equal(t, "Japanese", lang.Name)

	_, ok = LookupLanguage("klingon")
	assert.False(t, ok)
}
