package i18n

import (
	"embed"
	"log/slog"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var (
	//go:embed *.toml
	f embed.FS
)

type Localizer struct {
	bundle   *i18n.Bundle
	registry map[string]*i18n.Localizer
	matcher  language.Matcher
	tags     []string
}

func NewLocalizer(languages ...string) Localizer {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	// the first supported tag is the matcher fallback
	languages = append([]string{DEFAULT_LANG}, languages...)

	l := Localizer{
		bundle:   bundle,
		registry: make(map[string]*i18n.Localizer),
	}

	var supported []language.Tag
	for _, lang := range languages {
		if _, exist := l.registry[lang]; exist {
			continue
		}
		path := lang + ".toml"
		if _, err := bundle.LoadMessageFileFS(f, path); err != nil {
			slog.Error("Failed to load i18n message config", slog.String("error", err.Error()), slog.String("lang", lang), slog.String("file", path))
		}
		l.registry[lang] = i18n.NewLocalizer(l.bundle, lang)
		l.tags = append(l.tags, lang)
		supported = append(supported, language.Make(lang))
	}
	l.matcher = language.NewMatcher(supported)
	return l
}

// Match picks the best supported language for an Accept-Language header value.
func (l Localizer) Match(acceptLanguage string) string {
	if acceptLanguage == "" || len(l.tags) == 0 {
		return DEFAULT_LANG
	}
	// ParseAcceptLanguage errors only on malformed input, fall back quietly
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return DEFAULT_LANG
	}
	_, index, confidence := l.matcher.Match(prefs...)
	if confidence == language.No {
		return DEFAULT_LANG
	}
	return l.tags[index]
}

func (l Localizer) Get(lang string, id string) string {
	return l.GetWithData(lang, id, nil)
}

func (l Localizer) GetWithData(lang, id string, data map[string]interface{}) string {
	localizer := l.registry[lang]
	if localizer == nil {
		return id
	}
	cfg := &i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID:    id,
			Other: id,
		},
		TemplateData: data,
	}
	str, err := localizer.Localize(cfg)
	if err != nil {
		slog.Info("failed to get localizer message", slog.String("message", "GetWithData"), slog.String("id", id), slog.String("error", err.Error()))
		return id
	}

	return str
}
