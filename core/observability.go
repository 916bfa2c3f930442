package core

import (
	"context"
	"sort"
	"strings"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

func nopLogger() Logger {
	return glog.Nop()
}

func (e *Engine[Q]) observeRun(
	ctx context.Context,
	startedAt time.Time,
	runID string,
	order []string,
	err error,
) {
	if e == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}

	fields := map[string]any{
		"run_id":      runID,
		"hooks":       strings.Join(order, ","),
		"status":      status,
		"duration_ms": time.Since(startedAt).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err.Error()
	}

	tags := map[string]string{
		"status": status,
	}
	e.recordCounter(ctx, "rummage.run.total", 1, tags)
	e.recordHistogram(ctx, "rummage.run.duration_ms", float64(time.Since(startedAt).Milliseconds()), tags)

	if err != nil {
		e.logWithLevel(ctx, "error", "rummage run failed", fields)
		return
	}
	e.logWithLevel(ctx, "info", "rummage run succeeded", fields)
}

func (e *Engine[Q]) logWithLevel(ctx context.Context, level string, message string, fields map[string]any) {
	if e == nil || e.logger == nil {
		return
	}
	logger := e.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(cloneFields(fields))
	}
	args := flattenFields(fields)
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		logger.Error(message, args...)
	default:
		logger.Info(message, args...)
	}
}

func (e *Engine[Q]) recordCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.IncCounter(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func (e *Engine[Q]) recordHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.ObserveHistogram(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func cloneTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return map[string]string{}
	}
	copied := make(map[string]string, len(tags))
	for key, value := range tags {
		copied[key] = value
	}
	return copied
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}
