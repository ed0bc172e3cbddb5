package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"energy_scheduler/internal/model"
	"energy_scheduler/internal/scenario"
	"energy_scheduler/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages WebSocket connections and routes optimization requests to
// the scenario runner. Only one optimization runs at a time.
type Handler struct {
	hub    *Hub
	runner *scenario.Runner
	bridge *Bridge
	runs   *store.Store
	log    zerolog.Logger

	capKW      float64
	panelCount int

	mu   sync.Mutex
	busy bool
}

func NewHandler(hub *Hub, runner *scenario.Runner, runs *store.Store, capKW float64, panelCount int, log zerolog.Logger) *Handler {
	return &Handler{
		hub:        hub,
		runner:     runner,
		bridge:     NewBridge(hub, log, runner.Trials()),
		runs:       runs,
		log:        log,
		capKW:      capKW,
		panelCount: panelCount,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade")
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	h.sendConfigLoaded(client)
	h.sendHistory(client)

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Msg("websocket read")
			}
			return
		}

		h.handleMessage(msg)
	}
}

func (h *Handler) handleMessage(msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		h.log.Warn().Err(err).Msg("invalid message")
		return
	}

	switch env.Type {
	case TypeRunStart:
		var p RunStartPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.log.Warn().Err(err).Msg("invalid run:start payload")
			return
		}
		sc := model.Scenario{DayType: p.DayType, Season: p.Season, Weekday: p.Weekday}
		h.startRuns([]model.Scenario{sc})

	case TypeRunAll:
		h.startRuns(scenario.DefaultScenarios())

	default:
		h.log.Warn().Str("type", env.Type).Msg("unknown message type")
	}
}

// startRuns kicks off the scenarios in a background goroutine unless an
// optimization is already in flight.
func (h *Handler) startRuns(scenarios []model.Scenario) {
	h.mu.Lock()
	if h.busy {
		h.mu.Unlock()
		h.bridge.Error(scenarios[0], errBusy)
		return
	}
	h.busy = true
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			h.busy = false
			h.mu.Unlock()
		}()

		for _, sc := range scenarios {
			run, err := h.runner.Run(context.Background(), sc, h.bridge.Progress(sc))
			if err != nil {
				h.log.Error().Err(err).Str("scenario", sc.Label()).Msg("optimization failed")
				h.bridge.Error(sc, err)
				return
			}
			h.bridge.Result(h.runs.Add(run))
		}
	}()
}

var errBusy = errors.New("an optimization is already running")

func (h *Handler) sendConfigLoaded(c *Client) {
	payload := ConfigLoadedPayload{
		Scenarios:  scenario.DefaultScenarios(),
		CapKW:      h.capKW,
		PanelCount: h.panelCount,
		Trials:     h.runner.Trials(),
	}
	h.sendTo(c, TypeConfigLoaded, payload)
}

func (h *Handler) sendHistory(c *Client) {
	h.sendTo(c, TypeHistory, HistoryPayload{Runs: h.runs.Runs()})
}

func (h *Handler) sendTo(c *Client, msgType string, payload any) {
	msg, err := NewEnvelope(msgType, payload)
	if err != nil {
		h.log.Error().Err(err).Str("type", msgType).Msg("encoding message")
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}
