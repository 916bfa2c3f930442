// Package params models the nested parameter tree threaded through a rummage
// run. Values are plain map[string]any trees; every mutation helper returns a
// new tree so each pipeline stage observes the map exactly as the previous
// stage produced it.
package params
