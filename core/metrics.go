package core

import "context"

// NopMetricsRecorder discards the run counter and duration histogram the
// engine emits. It is the default when no recorder is supplied.
type NopMetricsRecorder struct{}

func (NopMetricsRecorder) IncCounter(context.Context, string, int64, map[string]string) {}

func (NopMetricsRecorder) ObserveHistogram(context.Context, string, float64, map[string]string) {}

var _ MetricsRecorder = NopMetricsRecorder{}
