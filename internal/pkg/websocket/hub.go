package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of connected clients keyed by user ID and
// delivers events to a user's open connections.
type Hub struct {
	// Registered clients organized by user ID
	clients map[int64]map[*Client]bool

	// Channel for outbound events
	deliver chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// Event is a push notification sent to a connected user.
type Event struct {
	// Type of event, currently only "message"
	Type string `json:"type"`

	// User the event is delivered to
	ReceiverID int64 `json:"-"`

	// Event payload, e.g. a message response
	Payload interface{} `json:"payload"`

	// Timestamp when the event was created
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		deliver:    make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[int64]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and deliveries.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.deliver:
			h.deliverEvent(event)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[client.userID]; ok {
		if _, ok := conns[client]; ok {
			delete(conns, client)
			close(client.send)

			if len(conns) == 0 {
				delete(h.clients, client.userID)
			}

			h.logger.Info().
				Int64("userID", client.userID).
				Msg("Client unregistered")
		}
	}
}

// deliverEvent sends an event to every open connection of the receiver.
// Connections whose send buffer is full are dropped inline; routing them
// through the unregister channel would block the run loop on itself.
func (h *Hub) deliverEvent(event *Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[event.ReceiverID]
	if !ok {
		h.logger.Debug().
			Int64("receiverID", event.ReceiverID).
			Msg("Receiver not connected, event dropped")
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("receiverID", event.ReceiverID).
			Msg("Failed to marshal event")
		return
	}

	for client := range conns {
		select {
		case client.send <- data:
		default:
			// Client's send buffer is full, they are slow or disconnected.
			delete(conns, client)
			close(client.send)
			h.logger.Info().
				Int64("userID", client.userID).
				Msg("Client dropped, send buffer full")
		}
	}
	if len(conns) == 0 {
		delete(h.clients, event.ReceiverID)
	}

	h.logger.Debug().
		Int64("receiverID", event.ReceiverID).
		Int("connectionCount", len(conns)).
		Msg("Event delivered")
}

// SendToUser queues an event for delivery to the given user. It never
// blocks the caller; events for disconnected users are dropped.
func (h *Hub) SendToUser(userID int64, eventType string, payload interface{}) {
	event := &Event{
		Type:       eventType,
		ReceiverID: userID,
		Payload:    payload,
		Timestamp:  time.Now(),
	}
	select {
	case h.deliver <- event:
	default:
		h.logger.Warn().
			Int64("receiverID", userID).
			Msg("Delivery queue full, event dropped")
	}
}

// IsUserConnected reports whether the user has at least one open connection.
func (h *Hub) IsUserConnected(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[userID]) > 0
}
