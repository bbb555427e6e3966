package http

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/vistacall/relay/internal/core/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: only for dev
	CheckOrigin: func(r *http.Request) bool { return true },
}

// frame is the envelope for both directions of the event channel.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Inbound call-lifecycle event names mapped to their routing kind.
var inboundKind = map[string]domain.EventKind{
	"call":        domain.KindCall,
	"accept_call": domain.KindAccept,
	"reject_call": domain.KindReject,
	"end_call":    domain.KindEnd,
}

type WSClient struct {
	id   string
	conn *websocket.Conn
	// one writer at a time: forwards from many connections may target us
	mu sync.Mutex
}

func (c *WSClient) ID() string {
	return c.id
}

func (c *WSClient) Send(event string, data json.RawMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(frame{Event: event, Data: data})
}

func (c *WSClient) Close() error {
	return c.conn.Close()
}

// HTTP handler
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}

	client := &WSClient{
		id:   uuid.New().String(),
		conn: conn,
	}

	l := log.With().Str("client_id", client.id).Logger()
	l.Info().Msg("New client connected")

	defer func() {
		l.Info().Msg("Client disconnected")
		h.Registry.ClearClient(client)
		conn.Close()
	}()

	// One event at a time per connection: forwards stay FIFO relative to
	// the originating connection.
	for {
		var req frame
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("Unexpected close error")
			}
			break
		}

		switch req.Event {
		case "register":
			var dto struct {
				UserID string `json:"userId"`
			}
			if err := json.Unmarshal(req.Data, &dto); err != nil {
				l.Warn().Err(err).Msg("Malformed register event")
				continue
			}
			h.Registry.Register(dto.UserID, client)

		case "register_push":
			var dto struct {
				UserID    string `json:"userId"`
				PushToken string `json:"pushToken"`
			}
			if err := json.Unmarshal(req.Data, &dto); err != nil {
				l.Warn().Err(err).Msg("Malformed register_push event")
				continue
			}
			h.Registry.RegisterPushToken(dto.UserID, dto.PushToken)

		default:
			kind, ok := inboundKind[req.Event]
			if !ok {
				l.Debug().Str("event", req.Event).Msg("Ignoring unknown event")
				continue
			}
			// Failures are isolated to the single event; the
			// connection stays up.
			if err := h.CallService.HandleEvent(r.Context(), kind, client, req.Data); err != nil {
				l.Error().Err(err).Str("event", req.Event).Msg("Failed to handle call event")
			}
		}
	}
}
