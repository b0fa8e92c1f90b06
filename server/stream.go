package server

import (
	"time"

	"github.com/Mattojjo/graphz"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// stream upgrades to a WebSocket and pushes the current snapshot, then every
// published one, as JSON text messages until the client goes away.
func (h *Handler) stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log := h.logger.WithField("remote", c.Request.RemoteAddr)
	log.Info("stream opened")
	defer log.Info("stream closed")

	updates, unsubscribe := h.engine.Subscribe()
	defer unsubscribe()

	// the client never sends anything, reading only detects the close
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := send(conn, h.engine.Snapshot()); err != nil {
		log.WithError(err).Debug("stream write failed")
		return
	}
	for {
		select {
		case <-closed:
			return
		case s, ok := <-updates:
			if !ok {
				return
			}
			if err := send(conn, s); err != nil {
				log.WithError(err).Debug("stream write failed")
				return
			}
		}
	}
}

func send(conn *websocket.Conn, s graphz.Snapshot) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(s)
}
