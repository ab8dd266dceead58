package catapult

import (
	"time"

	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/core"
)

// Recorder receives fire-and-forget persistence requests. Implementations
// must not block the caller. ConfigChanged calls done exactly once, after the
// write finished, failed or was dropped; done may be nil.
type Recorder interface {
	RunStarted(id string, start time.Time)
	RunFinished(res RunResult)
	ConfigChanged(p config.Params, done func())
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) RunStarted(string, time.Time) {}
func (NopRecorder) RunFinished(RunResult)        {}

func (NopRecorder) ConfigChanged(_ config.Params, done func()) {
	if done != nil {
		done()
	}
}

// Physics steps the bodies of a scene and reports contacts in the order
// ground, obstacles by index, enemy, pickup.
type Physics interface {
	Step(scene core.Scene, dt time.Duration) []core.Contact
}
