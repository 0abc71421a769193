package loader

import (
	"os"
	"sort"
	"strings"
)

// EnvLoader reads configuration overrides from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "AUTOTYPE_")
	mapping map[string]string // Env var -> config path
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates an environment loader with the default mappings.
// The prefix should include the trailing underscore (e.g., "AUTOTYPE_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		lookup:  os.LookupEnv,
	}
}

// NewEnvLoaderWithLookup creates a loader that resolves variables with
// lookup instead of the process environment.
func NewEnvLoaderWithLookup(prefix string, lookup func(string) (string, bool)) *EnvLoader {
	l := NewEnvLoader(prefix)
	if lookup != nil {
		l.lookup = lookup
	}
	return l
}

// defaultEnvMapping returns the default environment variable mappings.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":       "logging.level",
		prefix + "MODE":            "render.mode",
		prefix + "TEXT_COLOR":      "render.text_color",
		prefix + "CARET_COLOR":     "render.caret_color",
		prefix + "CARET":           "widget.caret",
		prefix + "STRINGS":         "widget.strings",
		prefix + "TYPING_SPEED":    "widget.typing_speed",
		prefix + "BACKSPACE_SPEED": "widget.backspace_speed",
		prefix + "BLINK":           "widget.enable_blinking",
	}
}

// Load returns the raw values of every mapped variable that is set, keyed
// by config path. Empty values are kept; a set-but-empty variable is an
// explicit override.
func (l *EnvLoader) Load() map[string]string {
	values := make(map[string]string)
	for env, path := range l.mapping {
		if val, ok := l.lookup(env); ok {
			values[path] = val
		}
	}
	return values
}

// Variables returns the mapped variable names, sorted.
func (l *EnvLoader) Variables() []string {
	names := make([]string, 0, len(l.mapping))
	for env := range l.mapping {
		names = append(names, env)
	}
	sort.Strings(names)
	return names
}

// ParseBool parses the boolean spellings accepted in the environment.
func ParseBool(s string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	default:
		return false, false
	}
}

// SplitList splits a sep-separated list. An empty string yields no items;
// empty items between separators are kept.
func SplitList(s, sep string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, sep)
}
