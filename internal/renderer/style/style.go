// Package style holds the shared styling rules used by styled rendering.
//
// Rules are registered once per process in the Global registry. The first
// registration of a name wins; later attempts are ignored, so any number of
// renderers may ensure the same rule without duplicating it.
package style

import (
	"sync"
	"time"
)

// BlinkClass is the class name that attaches the blink rule to a caret.
const BlinkClass = "autotype-blink"

// Rule is a periodic visibility oscillation attached to a class.
type Rule struct {
	// Name is the class the rule applies to.
	Name string
	// Period is the length of one full on/off cycle.
	Period time.Duration
	// Duty is the fraction of each period the element is visible.
	Duty float64
}

// BlinkRule is the caret blink: fully visible for the first half of a one
// second cycle, invisible for the second half, repeating forever.
var BlinkRule = Rule{
	Name:   BlinkClass,
	Period: time.Second,
	Duty:   0.5,
}

// VisibleAt reports whether an element animated by r is visible after
// elapsed time since the animation started.
func (r Rule) VisibleAt(elapsed time.Duration) bool {
	if r.Period <= 0 {
		return true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	phase := elapsed % r.Period
	return phase < time.Duration(float64(r.Period)*r.Duty)
}

// Registry is a set of rules keyed by name.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

var (
	global     *Registry
	globalOnce sync.Once
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
	})
	return global
}

// Ensure registers rule if no rule with the same name exists.
// It returns true only when this call performed the registration.
func (r *Registry) Ensure(rule Rule) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rules[rule.Name]; ok {
		return false
	}
	r.rules[rule.Name] = rule
	r.order = append(r.order, rule.Name)
	return true
}

// Lookup returns the rule registered under name.
func (r *Registry) Lookup(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[name]
	return rule, ok
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// Names returns the rule names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
