package ws

import (
	"encoding/json"

	"energy_scheduler/internal/model"
	"energy_scheduler/internal/schedule"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeRunStart = "run:start"
	TypeRunAll   = "run:all"

	// Server -> Client
	TypeConfigLoaded = "config:loaded"
	TypeRunProgress  = "run:progress"
	TypeRunResult    = "run:result"
	TypeRunError     = "run:error"
	TypeHistory      = "history"
)

// Client -> Server messages

type RunStartPayload struct {
	DayType string `json:"day_type"`
	Season  string `json:"season"`
	Weekday int    `json:"weekday"`
}

// Server -> Client messages

type ConfigLoadedPayload struct {
	Scenarios  []model.Scenario `json:"scenarios"`
	CapKW      float64          `json:"cap_kw"`
	PanelCount int              `json:"panel_count"`
	Trials     int              `json:"trials"`
}

type RunProgressPayload struct {
	Scenario model.Scenario `json:"scenario"`
	Done     int            `json:"done"`
	Total    int            `json:"total"`
}

type RunResultPayload struct {
	Run model.OptimizationRun `json:"run"`
}

type RunErrorPayload struct {
	Scenario model.Scenario `json:"scenario"`
	Message  string         `json:"message"`
}

type HistoryPayload struct {
	Runs []model.OptimizationRun `json:"runs"`
}

// SchedulePayload mirrors a schedule as a plain array for clients.
type SchedulePayload struct {
	Hours [24]float64 `json:"hours"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

// ScheduleFromPlan converts a planner schedule for transport.
func ScheduleFromPlan(s schedule.Schedule) SchedulePayload {
	return SchedulePayload{Hours: [24]float64(s)}
}
