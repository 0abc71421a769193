package config

import (
	"time"

	"github.com/dshills/autotype/internal/config/watcher"
	"github.com/dshills/autotype/internal/logging"
)

// ReloadFunc receives each successfully reloaded configuration.
type ReloadFunc func(cfg *Config)

// Reloader reloads a configuration file whenever it changes.
// Invalid edits are logged and skipped; the previous configuration stays
// in effect until the file loads cleanly again.
type Reloader struct {
	path     string
	onReload ReloadFunc
	loader   *Loader
	watcher  *watcher.Watcher
	log      *logging.Logger
}

// ReloaderOption configures a Reloader.
type ReloaderOption func(*reloaderOptions)

type reloaderOptions struct {
	debounce time.Duration
	loader   *Loader
	log      *logging.Logger
}

// WithReloadDebounce sets how long the file must be quiet before reloading.
func WithReloadDebounce(d time.Duration) ReloaderOption {
	return func(o *reloaderOptions) {
		o.debounce = d
	}
}

// WithReloadLoader sets the loader used to read the file.
func WithReloadLoader(l *Loader) ReloaderOption {
	return func(o *reloaderOptions) {
		if l != nil {
			o.loader = l
		}
	}
}

// WithReloadLogger sets the logger.
func WithReloadLogger(l *logging.Logger) ReloaderOption {
	return func(o *reloaderOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// NewReloader creates a reloader for path. Call Start to begin watching.
func NewReloader(path string, onReload ReloadFunc, opts ...ReloaderOption) *Reloader {
	o := reloaderOptions{
		debounce: 200 * time.Millisecond,
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.loader == nil {
		o.loader = NewLoader()
	}

	r := &Reloader{
		path:     path,
		onReload: onReload,
		loader:   o.loader,
		watcher:  watcher.New(watcher.WithDebounce(o.debounce)),
		log:      o.log.WithComponent("config").WithField("path", path),
	}
	r.watcher.OnChange(r.handle)
	r.watcher.OnError(func(err error) {
		r.log.Err(err, "config watcher error")
	})
	return r
}

// Start begins watching the configuration file.
func (r *Reloader) Start() error {
	if err := r.watcher.Watch(r.path); err != nil {
		return err
	}
	if err := r.watcher.Start(); err != nil {
		return err
	}
	r.log.Debug("watching for changes")
	return nil
}

// Stop stops watching.
func (r *Reloader) Stop() {
	r.watcher.Stop()
}

func (r *Reloader) handle(event watcher.Event) {
	if event.Op == watcher.OpRemove || event.Op == watcher.OpRename {
		r.log.Warn("config file %s, keeping current configuration", event.Op)
		return
	}

	cfg, err := r.loader.Load(r.path)
	if err != nil {
		r.log.Err(err, "reload failed, keeping current configuration")
		return
	}

	r.log.Info("configuration reloaded")
	r.onReload(cfg)
}
