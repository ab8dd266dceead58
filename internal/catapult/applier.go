package catapult

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/core"
)

// Applier writes reward overrides into the shared parameters. It is the
// only writer of the holder during play.
type Applier struct {
	holder   *config.Holder
	rng      *core.RNG
	recorder Recorder
	logger   *log.Logger
}

// NewApplier creates an applier writing through holder.
func NewApplier(holder *config.Holder, rng *core.RNG, recorder Recorder, logger *log.Logger) *Applier {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Applier{holder: holder, rng: rng, recorder: recorder, logger: orDiscard(logger)}
}

// ApplyOverride draws a value from r, writes it at key and asks the recorder
// to persist the obstacles and player sub-tree. Until the recorder reports
// the write, reloads from the store are refused by the holder. An unknown key or a draw
// outside r is a programming error and panics.
func (a *Applier) ApplyOverride(key string, r core.Range) float64 {
	if _, err := (config.Params{}).Get(key); err != nil {
		panic(fmt.Sprintf("catapult: override %v", err))
	}
	v := a.rng.Float(r)
	if !r.Contains(v) {
		panic(fmt.Sprintf("catapult: override %s drew %v outside [%v, %v]", key, v, r.Min, r.Max))
	}

	snap := a.holder.Override(func(p *config.Params) {
		if err := p.Set(key, v); err != nil {
			panic(err)
		}
	})
	a.logger.Info("config override", "key", key, "value", v)
	a.recorder.ConfigChanged(snap, a.holder.Stored)
	return v
}

// Apply applies the edit table entry for key.
func (a *Applier) Apply(key string) float64 {
	e, ok := config.LookupEdit(key)
	if !ok {
		panic(fmt.Sprintf("catapult: %s is not an editable key", key))
	}
	return a.ApplyOverride(e.Key, e.Range)
}
