package core

import (
	"fmt"
	"strings"
)

// HookBindingsConfig names the registered hook serving each built-in concern.
// An empty name means the concern is unconfigured; resolving it without a
// per-call override is a configuration error.
type HookBindingsConfig struct {
	Search   string `koanf:"search" mapstructure:"search"`
	Sort     string `koanf:"sort" mapstructure:"sort"`
	Paginate string `koanf:"paginate" mapstructure:"paginate"`
}

type PaginateConfig struct {
	PerPage int `koanf:"per_page" mapstructure:"per_page"`
}

type Config struct {
	ServiceName string             `koanf:"service_name" mapstructure:"service_name"`
	Hooks       HookBindingsConfig `koanf:"hooks" mapstructure:"hooks"`
	Paginate    PaginateConfig     `koanf:"paginate" mapstructure:"paginate"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "rummage",
		Hooks: HookBindingsConfig{
			Search:   ConcernSearch,
			Sort:     ConcernSort,
			Paginate: ConcernPaginate,
		},
		Paginate: PaginateConfig{PerPage: 10},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if c.Paginate.PerPage < 0 {
		return fmt.Errorf("core: paginate.per_page must not be negative")
	}
	return nil
}

// DefaultBinding returns the registry name serving a concern when no
// per-call override is supplied. Built-in concerns resolve through the
// configured binding; custom concerns resolve under their own name.
func (c Config) DefaultBinding(concern string) string {
	switch strings.TrimSpace(concern) {
	case ConcernSearch:
		return strings.TrimSpace(c.Hooks.Search)
	case ConcernSort:
		return strings.TrimSpace(c.Hooks.Sort)
	case ConcernPaginate:
		return strings.TrimSpace(c.Hooks.Paginate)
	default:
		return strings.TrimSpace(concern)
	}
}
