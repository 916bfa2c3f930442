package rummage

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-rummage/core"
)

// HookPack bundles named hooks so extensions can ship several concerns as
// one unit and hosts can apply them to a registry in one call.
type HookPack[Q any] struct {
	Name  string
	Hooks map[string]core.Hook[Q]
}

type ExtensionHooks[Q any] struct {
	mu    sync.RWMutex
	packs map[string]HookPack[Q]
}

func NewExtensionHooks[Q any]() *ExtensionHooks[Q] {
	return &ExtensionHooks[Q]{
		packs: map[string]HookPack[Q]{},
	}
}

func (h *ExtensionHooks[Q]) RegisterHookPack(pack HookPack[Q]) error {
	if h == nil {
		return fmt.Errorf("rummage: extension hooks are nil")
	}
	name := strings.TrimSpace(pack.Name)
	if name == "" {
		return fmt.Errorf("rummage: hook pack name is required")
	}
	if len(pack.Hooks) == 0 {
		return fmt.Errorf("rummage: hook pack %q has no hooks", name)
	}

	normalized := HookPack[Q]{
		Name:  name,
		Hooks: make(map[string]core.Hook[Q], len(pack.Hooks)),
	}
	for hookName, hook := range pack.Hooks {
		hookName = strings.TrimSpace(hookName)
		if hookName == "" {
			return fmt.Errorf("rummage: hook pack %q contains an unnamed hook", name)
		}
		if hook == nil {
			return fmt.Errorf("rummage: hook pack %q hook %q is nil", name, hookName)
		}
		normalized.Hooks[hookName] = hook
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.packs[name]; exists {
		return fmt.Errorf("rummage: hook pack %q already registered", name)
	}
	h.packs[name] = normalized
	return nil
}

// HookPacks returns the registered packs in deterministic name order.
func (h *ExtensionHooks[Q]) HookPacks() []HookPack[Q] {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	names := make([]string, 0, len(h.packs))
	for name := range h.packs {
		names = append(names, name)
	}
	h.mu.RUnlock()
	sort.Strings(names)

	packs := make([]HookPack[Q], 0, len(names))
	h.mu.RLock()
	for _, name := range names {
		packs = append(packs, h.packs[name])
	}
	h.mu.RUnlock()
	return packs
}

// Apply registers every hook from every pack into the registry. Hook names
// are registered in deterministic order so duplicate collisions surface
// reproducibly.
func (h *ExtensionHooks[Q]) Apply(registry core.Registry[Q]) error {
	if h == nil {
		return nil
	}
	if registry == nil {
		return fmt.Errorf("rummage: registry is required")
	}
	for _, pack := range h.HookPacks() {
		names := make([]string, 0, len(pack.Hooks))
		for name := range pack.Hooks {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := registry.Register(name, pack.Hooks[name]); err != nil {
				return err
			}
		}
	}
	return nil
}
