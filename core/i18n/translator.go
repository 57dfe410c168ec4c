package i18n

// Translator binds an I18n instance to one language and namespace.
type Translator struct {
	i18n      *I18n
	language  string
	namespace string
}

// NewTranslator creates a Translator. An empty language selects the default.
func NewTranslator(i18n *I18n, language, namespace string) *Translator {
	if i18n == nil {
		panic(ErrNilI18n)
	}
	if language == "" {
		language = i18n.DefaultLanguage()
	}
	return &Translator{i18n: i18n, language: language, namespace: namespace}
}

// T translates key in the translator's language and namespace.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.i18n.T(t.language, t.namespace, key, placeholders...)
}

// Language returns the translator's language.
func (t *Translator) Language() string {
	return t.language
}

// Namespace returns the translator's namespace.
func (t *Translator) Namespace() string {
	return t.namespace
}
