package tutor

import "strings"

type Language struct {
	Name       string
	SpeechCode string // BCP-47 tag for the speech APIs
}

var languages = map[string]Language{
	"english":    {Name: "English", SpeechCode: "en-US"},
	"french":     {Name: "French", SpeechCode: "fr-FR"},
	"german":     {Name: "German", SpeechCode: "de-DE"},
	"spanish":    {Name: "Spanish", SpeechCode: "es-ES"},
	"italian":    {Name: "Italian", SpeechCode: "it-IT"},
	"portuguese": {Name: "Portuguese", SpeechCode: "pt-BR"},
	"russian":    {Name: "Russian", SpeechCode: "ru-RU"},
	"japanese":   {Name: "Japanese", SpeechCode: "ja-JP"},
	"korean":     {Name: "Korean", SpeechCode: "ko-KR"},
	"chinese":    {Name: "Chinese", SpeechCode: "cmn-CN"},
	"arabic":     {Name: "Arabic", SpeechCode: "ar-XA"},
}

// short codes clients send instead of names
var aliases = map[string]string{
	"en": "english", "fr": "french", "de": "german", "es": "spanish",
	"it": "italian", "pt": "portuguese", "ru": "russian", "ja": "japanese",
	"ko": "korean", "zh": "chinese", "ar": "arabic",
}

// LookupLanguage resolves a name ("French") or short code ("fr").
func LookupLanguage(key string) (Language, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	if name, ok := aliases[key]; ok {
		key = name
	}
	lang, ok := languages[key]
	return lang, ok
}
