package services

import (
	"encoding/json"
	"sync"

	"github.com/bellapacxx/bingo-cardgen/utils/logger"
	"github.com/gorilla/websocket"
)

type Client struct {
	id   string
	conn *websocket.Conn
	room *DealerRoom
	send chan []byte
	once sync.Once
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

// --------------------
// Client read/write pumps
// --------------------
func (c *Client) readPump() {
	defer func() {
		c.room.hub.leave(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Infof("[Client %s] disconnected normally", c.id)
			} else {
				logger.Infof("[Client %s] read error: %v", c.id, err)
			}
			return
		}

		func(msg []byte) {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("[Client %s] recovered from panic: %v", c.id, r)
				}
			}()

			logger.Debugf("[Client %s] raw message: %s", c.id, string(msg))
			var data map[string]any
			if err := json.Unmarshal(msg, &data); err != nil {
				logger.Infof("[Client %s] invalid message: %v", c.id, err)
				c.sendEvent(errorEvent("invalid message, expected a JSON object"))
				return
			}

			switch data["action"] {
			case "generate_card":
				format, _ := data["format"].(string)
				c.room.dealCard(c, format)
			case "generate_batch":
				format, _ := data["format"].(string)
				count, ok := data["count"].(float64)
				if !ok {
					logger.Infof("[Client %s] invalid count: %v", c.id, data["count"])
					c.sendEvent(errorEvent("invalid count"))
					return
				}
				c.room.dealBatch(c, format, int(count))
			case "clear_session":
				c.room.clearSession(c)
			default:
				logger.Infof("[Client %s] unknown action: %v", c.id, data["action"])
				c.sendEvent(errorEvent("unknown action"))
			}
		}(message)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Infof("[Client %s] write error: %v", c.id, err)
			return
		}
	}
}

// sendEvent queues a payload for this client only. Slow consumers drop
// messages instead of blocking the room.
func (c *Client) sendEvent(payload any) {
	b, err := json.Marshal(payload)
	if err != nil {
		logger.Errorf("[Client %s] marshal event: %v", c.id, err)
		return
	}
	select {
	case c.send <- b:
	default:
		logger.Warnf("[Client %s] send buffer full, dropping event", c.id)
	}
}
