package services

import (
	"encoding/json"
	"sync"

	"github.com/bellapacxx/bingo-cardgen/models"
	"github.com/bellapacxx/bingo-cardgen/utils/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const sendBufferSize = 32

type cardEvent struct {
	Type string            `json:"type"`
	Card *models.BingoCard `json:"card"`
}

type batchEvent struct {
	Type  string              `json:"type"`
	Cards []*models.BingoCard `json:"cards"`
	Count int                 `json:"count"`
}

type roomStateEvent struct {
	Type        string `json:"type"`
	SessionID   string `json:"session_id"`
	Dealers     int    `json:"dealers"`
	IssuedCards int    `json:"issued_cards"`
}

func errorEvent(message string) map[string]string {
	return map[string]string{
		"type":    "error",
		"message": message,
	}
}

// DealerHub tracks one DealerRoom per session. Rooms appear when the
// first dealer connects and are dropped when the last one leaves.
type DealerHub struct {
	service  *BingoGeneratorService
	registry *CardRegistry
	archive  *CardArchive

	mu    sync.Mutex
	rooms map[string]*DealerRoom
}

func NewDealerHub(service *BingoGeneratorService, registry *CardRegistry, archive *CardArchive) *DealerHub {
	return &DealerHub{
		service:  service,
		registry: registry,
		archive:  archive,
		rooms:    make(map[string]*DealerRoom),
	}
}

// RoomCount reports how many dealer rooms currently have clients.
func (h *DealerHub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

// join registers conn in the session's room and starts its pumps.
// Membership changes always take h.mu before the room lock.
func (h *DealerHub) join(sessionID string, conn *websocket.Conn) {
	client := &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	room, ok := h.rooms[sessionID]
	if !ok {
		room = &DealerRoom{
			sessionID: sessionID,
			hub:       h,
			clients:   make(map[string]*Client),
		}
		h.rooms[sessionID] = room
	}
	client.room = room
	room.mu.Lock()
	room.clients[client.id] = client
	room.mu.Unlock()
	h.mu.Unlock()

	go client.writePump()
	go client.readPump()

	logger.Infof("[Room %s] client %s joined (total=%d)", sessionID, client.id, room.clientCount())
	room.broadcastState()
}

// leave drops the client from its room, reaping the room once empty.
func (h *DealerHub) leave(c *Client) {
	room := c.room

	h.mu.Lock()
	room.mu.Lock()
	if _, ok := room.clients[c.id]; ok {
		delete(room.clients, c.id)
		c.Close()
	}
	empty := len(room.clients) == 0
	room.mu.Unlock()
	if empty {
		delete(h.rooms, room.sessionID)
	}
	h.mu.Unlock()

	logger.Infof("[Room %s] client %s left", room.sessionID, c.id)
	if !empty {
		room.broadcastState()
	}
}

// A DealerRoom fans dealt cards out to every console watching the same
// session. Errors go only to the client that asked.
type DealerRoom struct {
	sessionID string
	hub       *DealerHub

	mu      sync.RWMutex
	clients map[string]*Client
}

func (r *DealerRoom) clientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

func (r *DealerRoom) dealCard(c *Client, format string) {
	card, err := r.hub.service.GenerateCard(format, r.sessionID)
	if err != nil {
		c.sendEvent(errorEvent(err.Error()))
		return
	}

	if err := r.hub.archive.Save(card); err != nil {
		logger.Errorf("[Room %s] archive card %s: %v", r.sessionID, card.ID, err)
	}

	r.broadcast(cardEvent{Type: "card", Card: card})
}

func (r *DealerRoom) dealBatch(c *Client, format string, count int) {
	cards, err := r.hub.service.GenerateBatch(format, r.sessionID, count)
	if err != nil {
		c.sendEvent(errorEvent(err.Error()))
		return
	}

	for _, card := range cards {
		if err := r.hub.archive.Save(card); err != nil {
			logger.Errorf("[Room %s] archive card %s: %v", r.sessionID, card.ID, err)
		}
	}

	r.broadcast(batchEvent{Type: "cards", Cards: cards, Count: len(cards)})
}

func (r *DealerRoom) clearSession(c *Client) {
	r.hub.service.ClearSession(r.sessionID)
	logger.Infof("[Room %s] session cleared by client %s", r.sessionID, c.id)
	r.broadcast(map[string]string{
		"type":       "session_cleared",
		"session_id": r.sessionID,
	})
}

// broadcastState pushes headcount and issuance totals to the room.
func (r *DealerRoom) broadcastState() {
	r.broadcast(roomStateEvent{
		Type:        "room_state",
		SessionID:   r.sessionID,
		Dealers:     r.clientCount(),
		IssuedCards: r.hub.registry.SessionCount(r.sessionID),
	})
}

func (r *DealerRoom) broadcast(payload any) {
	b, err := json.Marshal(payload)
	if err != nil {
		logger.Errorf("[Room %s] marshal broadcast: %v", r.sessionID, err)
		return
	}

	r.mu.RLock()
	clients := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		clients = append(clients, c)
	}
	r.mu.RUnlock()

	for _, c := range clients {
		func(c *Client) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Errorf("[Room %s] recovered broadcast to client %s: %v", r.sessionID, c.id, rec)
				}
			}()
			select {
			case c.send <- b:
			default:
				logger.Warnf("[Room %s] dropping message to client %s", r.sessionID, c.id)
			}
		}(c)
	}
}
