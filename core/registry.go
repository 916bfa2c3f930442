package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// HookRegistry is a thread-safe Registry keyed by concern name.
type HookRegistry[Q any] struct {
	mu    sync.RWMutex
	hooks map[string]Hook[Q]
}

func NewHookRegistry[Q any]() *HookRegistry[Q] {
	return &HookRegistry[Q]{hooks: make(map[string]Hook[Q])}
}

func (r *HookRegistry[Q]) Register(name string, hook Hook[Q]) error {
	if hook == nil {
		return fmt.Errorf("core: hook is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("core: hook name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.hooks[name]; exists {
		return fmt.Errorf("core: hook already registered: %s", name)
	}
	r.hooks[name] = hook
	return nil
}

func (r *HookRegistry[Q]) Get(name string) (Hook[Q], bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}
	r.mu.RLock()
	hook, ok := r.hooks[name]
	r.mu.RUnlock()
	return hook, ok
}

func (r *HookRegistry[Q]) List() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.hooks))
	for name := range r.hooks {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
