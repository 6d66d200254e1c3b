package extract

import (
	"strings"
	"unicode"
)

// CleanName produces the display name from the raw name cell.
//
// Every occurrence of noise is removed first; only then is a trailing copy of
// father stripped, since noise between the name and the father's name would
// otherwise hide the suffix. Stripping never empties the name, which keeps
// the function idempotent.
func CleanName(raw, father, noise string) string {
	name := raw
	if noise != "" {
		for strings.Contains(name, noise) {
			name = strings.ReplaceAll(name, noise, "")
		}
	}
	name = strings.TrimSpace(name)

	father = strings.TrimSpace(father)
	if father == "" {
		return name
	}
	for strings.HasSuffix(name, father) {
		stripped := strings.TrimRightFunc(strings.TrimSuffix(name, father), unicode.IsSpace)
		if stripped == "" {
			break
		}
		name = stripped
	}
	return name
}
