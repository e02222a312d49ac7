package lang

// Language is an output language for generated commit messages,
// identified by its short code.
type Language string

const (
	English            Language = "en"
	ChineseSimplified  Language = "zh"
	ChineseTraditional Language = "zh-tw"
	Japanese           Language = "ja"
	Korean             Language = "ko"
)

// displayNames maps each supported language to its native name, which
// is what the model is told to write in.
var displayNames = map[Language]string{
	English:            "English",
	ChineseSimplified:  "中文（简体）",
	ChineseTraditional: "中文（繁體）",
	Japanese:           "日本語",
	Korean:             "한국어",
}

// String returns the language code
func (l Language) String() string {
	return string(l)
}

// IsValid reports whether the language is one of the supported codes
func (l Language) IsValid() bool {
	_, ok := displayNames[l]
	return ok
}

// DisplayName returns the language's native name, or the raw code for
// unknown languages.
func (l Language) DisplayName() string {
	if name, ok := displayNames[l]; ok {
		return name
	}
	return string(l)
}

// Supported returns all supported languages
func Supported() []Language {
	return []Language{English, ChineseSimplified, ChineseTraditional, Japanese, Korean}
}
