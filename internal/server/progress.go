package server

import (
	"errors"
	"net/http"
	"osu-dumper/internal/constants"
	"osu-dumper/internal/ingest"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var errListenerClosed = errors.New("progress listener closed")

// ProgressHub keeps track of the newest websocket connection. That connection
// receives progress of runs bound to it and may cancel them.
type ProgressHub struct {
	upgrader websocket.Upgrader
	logger   zerolog.Logger

	mu      sync.Mutex
	primary *wsListener
}

func NewProgressHub(logger zerolog.Logger) *ProgressHub {
	return &ProgressHub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

type wsListener struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	closed  atomic.Bool
	gate    atomic.Pointer[ingest.Gate]
}

func (l *wsListener) Send(text string) error {
	if l.closed.Load() {
		return errListenerClosed
	}

	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	l.conn.SetWriteDeadline(time.Now().Add(constants.WSWriteTimeout))
	return l.conn.WriteMessage(websocket.TextMessage, []byte(text))
}

func (l *wsListener) cancel() {
	l.gate.Load().RequestCancel()
}

// Bind attaches a new run to the primary connection. The returned release
// func must be called when the run ends. ok is false when nobody is connected.
func (h *ProgressHub) Bind() (listener ingest.Listener, gate *ingest.Gate, release func(), ok bool) {
	h.mu.Lock()
	l := h.primary
	h.mu.Unlock()

	if l == nil {
		return nil, nil, func() {}, false
	}

	gate = ingest.NewGate()
	if !l.gate.CompareAndSwap(nil, gate) {
		// Another run is bound to this connection; the new one will be rejected as busy.
		return l, gate, func() {}, true
	}
	release = func() { l.gate.CompareAndSwap(gate, nil) }
	return l, gate, release, true
}

func (h *ProgressHub) Connected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.primary != nil
}

// ServeHTTP upgrades the connection, makes it the primary listener and reads
// from it until it closes.
func (h *ProgressHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	l := &wsListener{conn: conn}
	h.mu.Lock()
	h.primary = l
	h.mu.Unlock()
	h.logger.Info().Str("remote_addr", r.RemoteAddr).Msg("progress listener attached")

	defer h.detach(l)

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug().Err(err).Msg("progress listener read failed")
			}
			return
		}
		if msgType == websocket.TextMessage && string(msg) == constants.CancelMessage {
			h.logger.Info().Msg("cancel requested by progress listener")
			l.cancel()
		}
		if err := l.Send(constants.KeepAliveReply); err != nil {
			h.logger.Debug().Err(err).Msg("keep alive reply failed")
			return
		}
	}
}

func (h *ProgressHub) detach(l *wsListener) {
	l.closed.Store(true)
	l.conn.Close()

	h.mu.Lock()
	if h.primary == l {
		h.primary = nil
	}
	h.mu.Unlock()
	h.logger.Info().Msg("progress listener detached")
}
