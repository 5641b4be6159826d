// internal/prefs/prefs.go
//
// User preferences: the one piece of state that outlives a process.
// Defines:
//   - EntryMode: how colors get onto the board (tap a slot, or drag a peg).
//   - Language: the UI language, matched from locale strings with x/text.
//   - Store: load/save of the pair, backed by SQLite or memory.
//
// The game core never reads or writes preferences; adapters do.

package prefs

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// EntryMode selects the color insertion style.
type EntryMode int

const (
	EntryTap  EntryMode = 0 // arm a color, then tap a slot
	EntryDrag EntryMode = 1 // drag a color or peg onto a slot
)

func (m EntryMode) String() string {
	if m == EntryDrag {
		return "drag"
	}
	return "tap"
}

// ParseEntryMode parses "tap" or "drag".
func ParseEntryMode(s string) (EntryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tap":
		return EntryTap, nil
	case "drag":
		return EntryDrag, nil
	}
	return EntryTap, fmt.Errorf("unknown entry mode %q: must be tap or drag", s)
}

func (m EntryMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *EntryMode) UnmarshalText(b []byte) error {
	v, err := ParseEntryMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Language is one of the supported UI languages.
type Language int

const (
	English Language = iota
	Spanish
	Chinese
	Korean
)

var (
	languageCodes = [...]string{"en", "es", "zh", "ko"}
	supported     = []language.Tag{language.English, language.Spanish, language.Chinese, language.Korean}
	matcher       = language.NewMatcher(supported)
)

func (l Language) String() string {
	if l < English || l > Korean {
		return languageCodes[English]
	}
	return languageCodes[l]
}

// Tag returns the BCP 47 tag for l.
func (l Language) Tag() language.Tag {
	if l < English || l > Korean {
		return language.English
	}
	return supported[l]
}

// ParseLanguage accepts exactly one of the supported codes.
func ParseLanguage(s string) (Language, error) {
	code := strings.ToLower(strings.TrimSpace(s))
	for i, c := range languageCodes {
		if c == code {
			return Language(i), nil
		}
	}
	return English, fmt.Errorf("unsupported language %q: must be one of %v", s, languageCodes)
}

// MatchLanguage picks the closest supported language for a locale string.
// It understands POSIX locales ("es_MX.UTF-8") and Accept-Language headers
// ("ko-KR,ko;q=0.9,en;q=0.8"). Anything unmatched falls back to English.
func MatchLanguage(locale string) Language {
	s := strings.TrimSpace(locale)
	// POSIX codeset and modifier suffixes; Accept-Language lists keep their q-values.
	if i := strings.IndexAny(s, ".@"); i >= 0 && !strings.ContainsAny(s, ",;") {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" || s == "C" || s == "POSIX" {
		return English
	}
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return English
	}
	return Language(idx)
}

func (l Language) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *Language) UnmarshalText(b []byte) error {
	v, err := ParseLanguage(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Preferences is the persisted pair.
type Preferences struct {
	Entry    EntryMode `json:"entry"`
	Language Language  `json:"language"`
}

// Defaults returns tap entry and the language matched from locale.
func Defaults(locale string) Preferences {
	return Preferences{Entry: EntryTap, Language: MatchLanguage(locale)}
}

// Store loads and saves preferences. Load returns the store's defaults for
// anything never saved.
type Store interface {
	Load(ctx context.Context) (Preferences, error)
	Save(ctx context.Context, p Preferences) error
	Close() error
}
