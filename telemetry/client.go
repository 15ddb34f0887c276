package telemetry

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// Client is a single monitor connection. Unlike the teacher's
// bidirectional ws.Client, there is no ReadPump: the monitor feed is
// write-only, so there is nothing for a client to send the hub.
type Client struct {
	conn *websocket.Conn
	send chan []byte
	log  *slog.Logger
}

func newClient(conn *websocket.Conn, log *slog.Logger) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, backlog),
		log:  log,
	}
}

// writePump relays broadcast frames to the underlying connection and
// keeps it alive with periodic pings, exactly as the teacher's
// ws.Client.WritePump does. It exits (and unregisters itself) the
// moment the send channel is closed or a write fails.
func (c *Client) writePump(unregister chan<- *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		unregister <- c
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
