package services

import (
	"net/http"

	"github.com/bellapacxx/bingo-cardgen/utils/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the request and joins the dealer room for the
// session named in the path.
func (h *DealerHub) HandleWebSocket(c *gin.Context) {
	sessionID := c.Param("session_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("[WS] upgrade error: %v", err)
		return
	}

	logger.Infof("[WS] new dealer connection for session %s", sessionID)
	h.join(sessionID, conn)
}
