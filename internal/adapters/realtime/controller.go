// Package realtime carries task events between project viewers over
// websockets. It trusts the HTTP layer's view checks: room membership
// is ephemeral and grants nothing durable.
package realtime

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"uptask/internal/app"
	"uptask/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

const sendQueueLen = 32

// Controller upgrades connections and owns their pumps.
type Controller struct {
	Rooms      *app.Rooms
	Registry   *app.Registry
	ReadLimit  int64
	PingPeriod time.Duration
}

func NewController(rooms *app.Rooms, registry *app.Registry, readLimit int64, pingPeriod time.Duration) *Controller {
	return &Controller{Rooms: rooms, Registry: registry, ReadLimit: readLimit, PingPeriod: pingPeriod}
}

// wsConn wraps one websocket with a bounded send queue. TrySend never
// blocks: a full queue drops the frame and reports backpressure.
type wsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS upgrades the request and runs the session until disconnect.
// Every connection gets a fresh session id: two tabs of one browser are
// two sessions with independent room membership and lifetimes. The
// browser token from the cookie session is kept only for log
// correlation across a user's connections.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	sid := core.SessionID(uuid.NewString())
	log.Info().Str("module", "realtime").Str("sid", string(sid)).
		Str("browser", c.GetString("session_token")).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "realtime").Msg("ws upgrade")
		return
	}

	conn := &wsConn{
		conn: ws,
		send: make(chan core.Frame, sendQueueLen),
	}

	ctx, cancel := context.WithCancel(ctx)
	ctl.Registry.Bind(sid, conn, cancel)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, conn)
}

// dropSession sweeps a disconnected session out of every room it had
// joined. Empty rooms disappear with it.
func (ctl *Controller) dropSession(sid core.SessionID) {
	for _, key := range ctl.Registry.RoomsOf(sid) {
		ctl.Rooms.Leave(key, sid)
	}
	ctl.Registry.Unbind(sid)
}
