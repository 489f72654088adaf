package tutor

import (
	"regexp"
	"strings"
)

// SystemPrompt is sent ahead of every student message.
const SystemPrompt = `You are a teacher fluent in many foreign languages. Your students are mostly Chinese speakers.
If the student's request is written mainly in Chinese, answer in Chinese; otherwise answer in the language the request uses.
When asked for practice material, write short foreign-language passages suited to the student's level and separate passages with a blank line.
If a request has nothing to do with learning a foreign language, reply with exactly: 此类任务与外语学习无关，不处理。`

const thinkClose = "</think>"

// matches a reasoning block, or an unterminated one running to the end
var thinkBlock = regexp.MustCompile(`(?s)<think>.*?(?:</think>|\z)`)

// StripThinking removes reasoning blocks some models prepend to their answer.
// The result never contains "<think>".
func StripThinking(s string) string {
	for {
		prev := s
		s = thinkBlock.ReplaceAllString(s, "")
		s = strings.ReplaceAll(s, thinkClose, "")
		// removing a tag can splice a new one together, so repeat until stable
		if s == prev {
			return strings.TrimSpace(s)
		}
	}
}
