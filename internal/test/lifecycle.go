package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects hooks registered through fx.Lifecycle so tests
// can run OnStart/OnStop by hand instead of spinning up an fx app.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append records the hook.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals on Called when the code under test asks fx to shut
// down. The channel send never blocks.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown reports the invocation and always succeeds.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called == nil {
		return nil
	}
	select {
	case s.Called <- struct{}{}:
	default:
	}
	return nil
}
