// Package i18n translates issue codes into human messages.
package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "min" or "max").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dict = map[string]map[string]string{
	"ja": {
		"invalid_type":   "型が不正です",
		"required":       "必須プロパティが不足しています",
		"unknown_key":    "未知のキーです",
		"duplicate_key":  "キーが重複しています",
		"too_small":      "値が小さすぎます",
		"too_big":        "値が大きすぎます",
		"too_short":      "短すぎます",
		"too_long":       "長すぎます",
		"pattern":        "パターンに一致しません",
		"invalid_enum":   "許可されていない値です",
		"invalid_format": "形式が不正です",
		"parse_error":    "解析エラー",
		"truncated":      "打ち切られました",
	},
	"en": {
		"invalid_type":   "invalid type",
		"required":       "required property missing",
		"unknown_key":    "unknown key",
		"duplicate_key":  "duplicate key",
		"too_small":      "too small",
		"too_big":        "too big",
		"too_short":      "too short",
		"too_long":       "too long",
		"pattern":        "does not match pattern",
		"invalid_enum":   "value not allowed",
		"invalid_format": "invalid format",
		"parse_error":    "parse error",
		"truncated":      "truncated",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dict[t.lang][code]
	if !ok {
		return code
	}
	if f := data["format"]; f != "" {
		// e.g. "invalid format (uuid)"
		return msg + " (" + f + ")"
	}
	return msg
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
