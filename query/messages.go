package query

import (
	"strings"

	"github.com/goliatone/go-rummage/params"
)

const TypeList = "rummage.query.list"

// ListMessage asks for a shaped listing: the parameter tree drives the hook
// chain, Hooks optionally reorders or subsets the concerns that run.
type ListMessage struct {
	Params params.Map
	Hooks  []string
}

func (ListMessage) Type() string { return TypeList }

func (m ListMessage) Validate() error {
	for _, concern := range m.Hooks {
		if strings.TrimSpace(concern) == "" {
			return queryValidationError("hooks", "hook concern names must be non-blank")
		}
	}
	return nil
}
