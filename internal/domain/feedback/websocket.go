package feedback

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tutorhub/internal/domain/review"
	"tutorhub/internal/pkg/response"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // configure in prod
}

// WebSocket subscribes the client to a record's thread. The socket is
// push-only: appends still go through the REST endpoint, the server ignores
// inbound frames other than control messages.
func (h *Handler) WebSocket(c *gin.Context) {
	recordID := c.Param("id")
	userID := c.GetInt64("user_id")
	isAdmin := c.GetString("role") == "admin"

	studentID, tutorID, err := h.service.records.GetParties(c.Request.Context(), recordID)
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review record not found")
		} else {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load review record")
		}
		return
	}
	if !isAdmin && userID != studentID && userID != tutorID {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not a party to this record")
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	conn := &connection{
		userID:   userID,
		recordID: recordID,
		send:     make(chan []byte, 16),
	}
	h.hub.register(conn)

	go writePump(ws, conn)
	readPump(ws, h.hub, conn)
}

func writePump(ws *websocket.Conn, c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ws.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func readPump(ws *websocket.Conn, hub *Hub, c *connection) {
	defer func() {
		hub.unregister(c)
		ws.Close()
	}()

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}
