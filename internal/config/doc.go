// Package config provides the configuration system for autotype.
//
// A configuration file lists one or more widgets, each an independent
// typewriter animation, plus shared logging and rendering settings.
// Files are TOML or YAML, chosen by extension:
//
//	[logging]
//	level = "info"
//
//	[render]
//	mode = "styled"
//	caret_color = "#ffcc00"
//
//	[[widget]]
//	strings = ["Hello", "World"]
//	caret = "_"
//	typing_speed = 80
//	row = 2
//	col = 4
//
// Widget fields that are omitted take the animation defaults. Speeds and
// pauses are whole milliseconds.
//
// # Precedence
//
// Values are resolved in order, later sources overriding earlier ones:
//
//  1. Built-in defaults
//  2. Configuration file
//  3. Environment variables (AUTOTYPE_*)
//  4. Command line flags (applied by the caller)
//
// # Sub-packages
//
//   - loader: File decoding (TOML, YAML) and environment variables
//   - watcher: File watching for live reload
//
// # Live reload
//
// A Reloader watches the configuration file and hands every successfully
// loaded and validated configuration to a callback:
//
//	r, err := config.NewReloader(path, func(cfg *config.Config) {
//	    app.Reload(cfg)
//	})
package config
