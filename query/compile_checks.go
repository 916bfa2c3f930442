package query

import (
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Querier[ListMessage, ListResult[struct{}]] = (*ListQuery[struct{}])(nil)
	_ gocmd.Message                                    = ListMessage{}
)
