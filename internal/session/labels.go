package session

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/texpand/internal/engine"
)

// labelPrefixes maps environments to the prefix of their generated labels.
var labelPrefixes = map[string]string{
	"equation":   "eq:",
	"equation*":  "eq:",
	"eqnarray":   "eq:",
	"eqnarray*":  "eq:",
	"align":      "eq:",
	"alignat":    "eq:",
	"gather":     "eq:",
	"multline":   "eq:",
	"figure":     "fig:",
	"figure*":    "fig:",
	"table":      "tab:",
	"table*":     "tab:",
	"enumerate":  "item:",
	"itemize":    "item:",
	"theorem":    "thm:",
	"lemma":      "lem:",
	"definition": "def:",
}

// LabelPrefix returns the label prefix for env. Labels outside any known
// environment are section labels.
func LabelPrefix(env string) string {
	if p, ok := labelPrefixes[env]; ok {
		return p
	}
	return "sec:"
}

// UUIDLabels generates labels from the environment prefix and the first
// group of a random UUID, for example "eq:3f2a9c1d".
func UUIDLabels() engine.LabelGenerator {
	return engine.LabelFunc(func(env string) (string, error) {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", err
		}
		return LabelPrefix(env) + strings.SplitN(id.String(), "-", 2)[0], nil
	})
}
