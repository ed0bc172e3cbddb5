package ws

import (
	"github.com/rs/zerolog"

	"energy_scheduler/internal/model"
	"energy_scheduler/internal/scenario"
)

// Bridge adapts scenario runner callbacks to hub broadcasts, throttling
// progress so large grids don't flood clients.
type Bridge struct {
	hub *Hub
	log zerolog.Logger
	// stride controls how often progress is broadcast: every stride-th
	// trial plus the final one.
	stride int
}

func NewBridge(hub *Hub, log zerolog.Logger, totalTrials int) *Bridge {
	stride := totalTrials / 100
	if stride < 1 {
		stride = 1
	}
	return &Bridge{hub: hub, log: log, stride: stride}
}

// Progress returns a trial callback scoped to one scenario.
func (b *Bridge) Progress(sc model.Scenario) scenario.Progress {
	return func(done, total int) {
		if done%b.stride != 0 && done != total {
			return
		}
		b.broadcast(TypeRunProgress, RunProgressPayload{Scenario: sc, Done: done, Total: total})
	}
}

// Result broadcasts a completed optimization run.
func (b *Bridge) Result(run model.OptimizationRun) {
	b.broadcast(TypeRunResult, RunResultPayload{Run: run})
}

// Error broadcasts a failed run.
func (b *Bridge) Error(sc model.Scenario, err error) {
	b.broadcast(TypeRunError, RunErrorPayload{Scenario: sc, Message: err.Error()})
}

func (b *Bridge) broadcast(msgType string, payload any) {
	msg, err := NewEnvelope(msgType, payload)
	if err != nil {
		b.log.Error().Err(err).Str("type", msgType).Msg("encoding broadcast")
		return
	}
	b.hub.Broadcast(msg)
}
