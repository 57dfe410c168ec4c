package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang is used when no default language is configured.
const DefaultLang = "en"

// I18n holds flattened translations for a fixed set of languages.
// It is immutable after New returns and safe for concurrent use.
type I18n struct {
	// key format: "lang:namespace:key.path"
	translations map[string]string

	defaultLang string
	languages   []string
	tags        []language.Tag
	matcher     language.Matcher

	missingKeyHandler func(lang, namespace, key string)
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates an I18n instance. Every language must be a valid BCP 47 tag.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if i.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}

	langs := []string{i.defaultLang}
	for _, lang := range i.languages {
		if lang != i.defaultLang && !slices.Contains(langs, lang) {
			langs = append(langs, lang)
		}
	}
	slices.Sort(langs[1:])
	i.languages = langs

	i.tags = make([]language.Tag, 0, len(langs))
	for _, lang := range langs {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
		}
		i.tags = append(i.tags, tag)
	}
	i.matcher = language.NewMatcher(i.tags)

	return i, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithLanguages sets the supported languages. The default language is always
// supported and listed first.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		for _, lang := range langs {
			if lang != "" {
				i.languages = append(i.languages, lang)
			}
		}
		return nil
	}
}

// WithMissingKeyHandler registers a callback for keys missing in both the
// requested and the default language.
func WithMissingKeyHandler(handler func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// WithTranslations loads a nested translation map for a language and
// namespace. Nested keys are joined with dots.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		for key, value := range flatten(translations, "") {
			i.translations[buildKey(lang, namespace, key)] = value
		}
		if !slices.Contains(i.languages, lang) {
			i.languages = append(i.languages, lang)
		}
		return nil
	}
}

// T returns the translation for key, falling back to the default language
// and then to the key itself. Placeholders use the %{name} format.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	if s, ok := i.translations[buildKey(lang, namespace, key)]; ok {
		return replace(s, placeholders...)
	}
	if lang != i.defaultLang {
		if s, ok := i.translations[buildKey(i.defaultLang, namespace, key)]; ok {
			return replace(s, placeholders...)
		}
	}
	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}
	return key
}

// Languages returns the supported languages, default first.
func (i *I18n) Languages() []string {
	return i.languages
}

// DefaultLanguage returns the fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

// Supported reports which supported language serves tag. A region or script
// specific tag falls back to its parents, so "fr-CA" resolves to "fr" when
// only "fr" is supported.
func (i *I18n) Supported(tag string) (string, bool) {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return "", false
	}
	for ; ; t = t.Parent() {
		for idx, supported := range i.tags {
			if supported == t {
				return i.languages[idx], true
			}
		}
		if t.IsRoot() {
			return "", false
		}
	}
}

// MatchAcceptLanguage picks the best supported language for an
// Accept-Language header value.
func (i *I18n) MatchAcceptLanguage(header string) (string, bool) {
	if strings.TrimSpace(header) == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := i.matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return i.languages[idx], true
}

func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flatten(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)
	for key, value := range data {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			result[full] = v
		case map[string]any:
			maps.Copy(result, flatten(v, full))
		case map[string]string:
			for sub, s := range v {
				result[full+"."+sub] = s
			}
		case nil:
		default:
			result[full] = fmt.Sprint(v)
		}
	}
	return result
}

func replace(template string, placeholders ...M) string {
	switch len(placeholders) {
	case 0:
		return template
	case 1:
		return ReplacePlaceholders(template, placeholders[0])
	}
	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return ReplacePlaceholders(template, merged)
}
