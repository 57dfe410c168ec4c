package i18n

import (
	"fmt"
	"strings"
)

// M maps placeholder names to values.
type M map[string]any

// ReplacePlaceholders substitutes %{name} placeholders. Unknown placeholders
// are left unchanged.
//
//	ReplacePlaceholders("Hello, %{name}!", M{"name": "Ann"}) // "Hello, Ann!"
func ReplacePlaceholders(template string, placeholders M) string {
	if len(placeholders) == 0 || !strings.Contains(template, "%{") {
		return template
	}
	pairs := make([]string, 0, len(placeholders)*2)
	for key, value := range placeholders {
		pairs = append(pairs, "%{"+key+"}", fmt.Sprint(value))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
