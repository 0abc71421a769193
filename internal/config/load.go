package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/dshills/autotype/internal/config/loader"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AUTOTYPE_"

// Loader resolves a configuration from defaults, a file and the
// environment.
type Loader struct {
	files *loader.FileLoader
	env   *loader.EnvLoader
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem reads configuration files from fsys.
func WithFileSystem(fsys loader.FileSystem) LoaderOption {
	return func(l *Loader) {
		l.files = loader.NewFileLoaderWithFS(fsys)
	}
}

// WithEnvLookup resolves environment overrides with lookup.
func WithEnvLookup(lookup func(string) (string, bool)) LoaderOption {
	return func(l *Loader) {
		l.env = loader.NewEnvLoaderWithLookup(EnvPrefix, lookup)
	}
}

// NewLoader creates a loader for the OS file system and environment.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		files: loader.NewFileLoader(),
		env:   loader.NewEnvLoader(EnvPrefix),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the configuration at path over the defaults, applies the
// environment and validates the result. An empty path skips the file.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := l.files.LoadInto(path, cfg); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return nil, err
		}
	}

	if err := ApplyEnv(cfg, l.env.Load()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EnvVariables returns the environment variables Load reads, sorted.
func EnvVariables() []string {
	return loader.NewEnvLoader(EnvPrefix).Variables()
}

// Load loads the configuration at path using the OS file system and
// environment.
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

// ApplyEnv applies raw environment values keyed by config path.
// "widget.strings" replaces the strings of the first widget, creating it
// when there is none; other widget settings apply to every widget.
func ApplyEnv(cfg *Config, values map[string]string) error {
	var errs ValidationErrors

	if v, ok := values["logging.level"]; ok {
		cfg.Logging.Level = v
	}
	if v, ok := values["render.mode"]; ok {
		cfg.Render.Mode = v
	}
	if v, ok := values["render.text_color"]; ok {
		cfg.Render.TextColor = v
	}
	if v, ok := values["render.caret_color"]; ok {
		cfg.Render.CaretColor = v
	}

	if v, ok := values["widget.strings"]; ok {
		if len(cfg.Widgets) == 0 {
			cfg.Widgets = append(cfg.Widgets, Widget{})
		}
		cfg.Widgets[0].Strings = loader.SplitList(v, "|")
	}

	intField := func(path string, set func(w *Widget, n int)) {
		v, ok := values[path]
		if !ok {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, &ValidationError{
				Path:    path,
				Message: "must be a whole number of milliseconds",
				Value:   v,
				Code:    ErrCodeTypeMismatch,
			})
			return
		}
		for i := range cfg.Widgets {
			set(&cfg.Widgets[i], n)
		}
	}
	intField("widget.typing_speed", func(w *Widget, n int) { w.TypingSpeed = Ptr(n) })
	intField("widget.backspace_speed", func(w *Widget, n int) { w.BackspaceSpeed = Ptr(n) })

	if v, ok := values["widget.caret"]; ok {
		for i := range cfg.Widgets {
			cfg.Widgets[i].Caret = Ptr(v)
		}
	}

	if v, ok := values["widget.enable_blinking"]; ok {
		b, valid := loader.ParseBool(v)
		if !valid {
			errs = append(errs, &ValidationError{
				Path:    "widget.enable_blinking",
				Message: "must be a boolean",
				Value:   v,
				Code:    ErrCodeTypeMismatch,
			})
		} else {
			for i := range cfg.Widgets {
				cfg.Widgets[i].EnableBlinking = Ptr(b)
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
