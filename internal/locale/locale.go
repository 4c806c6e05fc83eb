// Package locale provides the UI strings in English and Japanese.
package locale

import (
	"embed"
	"errors"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kk-code-lab/lightbox/internal/gallery"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed messages/*.toml
var messageFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error

	fallbackOnce sync.Once
	fallback     *Localizer
)

func loadBundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("toml", toml.Unmarshal)
		for _, name := range []string{"messages/active.en.toml", "messages/active.ja.toml"} {
			if _, err := b.LoadMessageFileFS(messageFS, name); err != nil {
				bundleErr = err
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

// Localizer translates message ids for one language.
type Localizer struct {
	lang string
	loc  *i18n.Localizer
}

// New returns a localizer for lang (a BCP 47 tag such as "ja" or "en-GB").
// Unknown languages fall back to English.
func New(lang string) (*Localizer, error) {
	b, err := loadBundle()
	if err != nil {
		return nil, err
	}
	tag := Match(lang)
	return &Localizer{lang: tag.String(), loc: i18n.NewLocalizer(b, tag.String())}, nil
}

// Match picks the supported language closest to lang.
func Match(lang string) language.Tag {
	supported := []language.Tag{language.English, language.Japanese}
	matcher := language.NewMatcher(supported)
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

func defaultLocalizer() *Localizer {
	fallbackOnce.Do(func() {
		l, err := New("en")
		if err != nil {
			l = &Localizer{lang: "en"}
		}
		fallback = l
	})
	return fallback
}

// Lang returns the matched language tag.
func (l *Localizer) Lang() string {
	if l == nil {
		return defaultLocalizer().lang
	}
	return l.lang
}

// T translates id with optional template data. A nil localizer uses English;
// an unknown id is returned as-is.
func (l *Localizer) T(id string, data map[string]any) string {
	if l == nil {
		l = defaultLocalizer()
	}
	if l.loc == nil {
		return id
	}
	msg, err := l.loc.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		return id
	}
	return msg
}

// Plural translates a message with plural forms selected by count.
func (l *Localizer) Plural(id string, count int) string {
	if l == nil {
		l = defaultLocalizer()
	}
	if l.loc == nil {
		return id
	}
	msg, err := l.loc.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
	if err != nil {
		return id
	}
	return msg
}

// ErrorMessage renders gallery errors for the status line; other errors are
// shown verbatim.
func (l *Localizer) ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var ie *gallery.IndexError
	switch {
	case errors.As(err, &ie):
		return l.T("ErrOutOfRange", map[string]any{"Index": ie.Index + 1, "Len": ie.Len})
	case errors.Is(err, gallery.ErrEmptyGallery):
		return l.T("ErrEmptyGallery", nil)
	case errors.Is(err, gallery.ErrNotOpen):
		return l.T("ErrNotOpen", nil)
	}
	return err.Error()
}
