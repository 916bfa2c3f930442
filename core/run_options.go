package core

import "strings"

// RunOptions carries the per-call execution options: hook ordering, binding
// overrides, and an opaque backing-store override forwarded to hooks.
type RunOptions[Q any] struct {
	Hooks     []string
	Overrides map[string]Hook[Q]
	Repo      any
}

type RunOption[Q any] func(*RunOptions[Q])

// NewRunOptions applies the given options over an empty set. An empty Hooks
// list means the engine uses DefaultHookOrder.
func NewRunOptions[Q any](opts ...RunOption[Q]) RunOptions[Q] {
	options := RunOptions[Q]{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&options)
	}
	return options
}

// Override returns the per-call hook registered for a concern, if any.
func (o RunOptions[Q]) Override(concern string) (Hook[Q], bool) {
	if len(o.Overrides) == 0 {
		return nil, false
	}
	hook, ok := o.Overrides[strings.TrimSpace(concern)]
	if !ok || hook == nil {
		return nil, false
	}
	return hook, true
}

// Order returns the requested execution order, falling back to the default.
func (o RunOptions[Q]) Order() []string {
	if len(o.Hooks) == 0 {
		return DefaultHookOrder()
	}
	return append([]string(nil), o.Hooks...)
}

// WithHooks reorders or subsets the concerns to run. The engine does not
// judge whether the order is semantically sound; reordering is the caller's
// responsibility.
func WithHooks[Q any](concerns ...string) RunOption[Q] {
	return func(o *RunOptions[Q]) {
		o.Hooks = append([]string(nil), concerns...)
	}
}

// WithHookOverride substitutes the hook serving a concern for this call only.
func WithHookOverride[Q any](concern string, hook Hook[Q]) RunOption[Q] {
	return func(o *RunOptions[Q]) {
		concern = strings.TrimSpace(concern)
		if concern == "" || hook == nil {
			return
		}
		if o.Overrides == nil {
			o.Overrides = map[string]Hook[Q]{}
		}
		o.Overrides[concern] = hook
	}
}

func WithSearchHook[Q any](hook Hook[Q]) RunOption[Q] {
	return WithHookOverride(ConcernSearch, hook)
}

func WithSortHook[Q any](hook Hook[Q]) RunOption[Q] {
	return WithHookOverride(ConcernSort, hook)
}

func WithPaginateHook[Q any](hook Hook[Q]) RunOption[Q] {
	return WithHookOverride(ConcernPaginate, hook)
}

// WithRepo overrides the backing store or connection hooks execute against.
// The value is opaque to the engine and forwarded to hooks as-is.
func WithRepo[Q any](repo any) RunOption[Q] {
	return func(o *RunOptions[Q]) {
		o.Repo = repo
	}
}
