package classifier

import (
	"github.com/abadojack/whatlanggo"
)

// Language is the outcome of natural language detection
type Language struct {
	Code       string  // ISO 639-1, or 639-3 when no two letter code exists
	Reliable   bool    // detector was confident
	Detected   bool    // false when Code is the fallback
	Confidence float64 // logged only
}

// DetectLanguage classifies text. Reliable and unreliable detections both
// yield a code; no detection yields DefaultLanguage.
func DetectLanguage(text string) Language {
	info := whatlanggo.Detect(text)
	if info.Script == nil || info.Lang < 0 {
		return Language{Code: DefaultLanguage}
	}

	code := info.Lang.Iso6391()
	if code == "" {
		code = info.Lang.Iso6393()
	}
	if code == "" {
		return Language{Code: DefaultLanguage}
	}

	return Language{
		Code:       code,
		Reliable:   info.IsReliable(),
		Detected:   true,
		Confidence: info.Confidence,
	}
}
