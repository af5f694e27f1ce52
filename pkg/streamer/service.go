package streamer

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

type service struct {
	opts Opts

	mtx               sync.Mutex
	conn              *websocket.Conn
	connecting        bool
	reconnectAttempts int
	reconnectTimer    *time.Timer
	// generation invalidates in-flight dials and read loops of previous
	// connections whenever the user disconnects or resets.
	generation int
}

// NewService returns a streamer Service connecting to opts.URL.
func NewService(opts Opts) Service {
	return &service{opts: opts.withDefaults()}
}

func (s *service) Connect(onMessage MessageHandler, onError ErrorHandler) {
	s.mtx.Lock()

	if s.connecting || s.conn != nil {
		s.mtx.Unlock()
		log.Debug("streamer: connection already in progress")
		return
	}

	s.clearReconnectTimer()

	if s.reconnectAttempts >= s.opts.MaxReconnectAttempts {
		s.mtx.Unlock()
		log.Warn("streamer: max reconnection attempts reached, staying disconnected")
		return
	}

	s.startDialLocked(onMessage, onError)
	s.mtx.Unlock()
}

func (s *service) SubscribeToAddress(address string) {
	s.mtx.Lock()
	conn := s.conn
	s.mtx.Unlock()

	if conn == nil {
		return
	}

	msg := map[string]interface{}{
		"action": "want",
		"data":   []string{"blocks", "mempool-blocks", "addresses", "transactions"},
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.WithError(err).Error("streamer: failed to subscribe to address updates")
		return
	}
	log.Debugf("streamer: subscribed to updates for address %s", address)
}

func (s *service) Disconnect() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.generation++
	s.clearReconnectTimer()

	if s.conn != nil {
		s.closeNormally(s.conn)
		s.conn = nil
	}

	s.connecting = false
	s.reconnectAttempts = 0
}

func (s *service) Reset(onMessage MessageHandler, onError ErrorHandler) {
	s.Disconnect()

	time.AfterFunc(s.opts.ResetDelay, func() {
		s.Connect(onMessage, onError)
	})
}

func (s *service) Status() Status {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	switch {
	case s.connecting:
		return Connecting
	case s.conn != nil:
		return Connected
	case s.reconnectAttempts >= s.opts.MaxReconnectAttempts:
		return Errored
	default:
		return Disconnected
	}
}

// startDialLocked spawns the dial goroutine. Callers must hold s.mtx.
func (s *service) startDialLocked(onMessage MessageHandler, onError ErrorHandler) {
	s.connecting = true
	generation := s.generation

	go s.dial(generation, onMessage, onError)
}

func (s *service) dial(generation int, onMessage MessageHandler, onError ErrorHandler) {
	dialer := websocket.Dialer{HandshakeTimeout: s.opts.ConnectTimeout}
	conn, _, err := dialer.Dial(s.opts.URL, nil)

	s.mtx.Lock()
	if generation != s.generation {
		s.mtx.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}

	s.connecting = false

	if err != nil {
		log.WithError(err).Warn("streamer: connection failed")
		s.scheduleReconnectLocked(onMessage, onError)
		s.mtx.Unlock()
		return
	}

	s.conn = conn
	s.reconnectAttempts = 0
	s.mtx.Unlock()

	log.Debug("streamer: connected to explorer stream")
	go s.readLoop(generation, conn, onMessage, onError)
}

func (s *service) readLoop(generation int, conn *websocket.Conn, onMessage MessageHandler, onError ErrorHandler) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			s.handleClose(generation, err, onMessage, onError)
			return
		}

		event := Event{}
		if err := json.Unmarshal(msg, &event); err != nil {
			log.WithError(err).Debug("streamer: dropping malformed message")
			continue
		}
		onMessage(event)
	}
}

func (s *service) handleClose(generation int, err error, onMessage MessageHandler, onError ErrorHandler) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if generation != s.generation {
		return
	}

	s.conn = nil
	s.connecting = false

	if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		log.Debug("streamer: connection closed")
		return
	}

	log.WithError(err).Debug("streamer: connection closed unexpectedly")
	s.scheduleReconnectLocked(onMessage, onError)
}

// scheduleReconnectLocked schedules the next reconnection with exponential
// backoff, or gives up once the attempts are exhausted. Callers must hold
// s.mtx.
func (s *service) scheduleReconnectLocked(onMessage MessageHandler, onError ErrorHandler) {
	if s.reconnectAttempts >= s.opts.MaxReconnectAttempts {
		log.Warnf(
			"streamer: giving up after %d reconnection attempts, falling back to polling only",
			s.opts.MaxReconnectAttempts,
		)
		return
	}

	delay := backoffDelay(s.reconnectAttempts, s.opts.BaseReconnectDelay, s.opts.MaxReconnectDelay)
	s.reconnectAttempts++

	log.Debugf(
		"streamer: reconnecting in %s (attempt %d/%d)",
		delay, s.reconnectAttempts, s.opts.MaxReconnectAttempts,
	)

	generation := s.generation
	s.reconnectTimer = time.AfterFunc(delay, func() {
		s.mtx.Lock()
		if generation != s.generation || s.connecting || s.conn != nil {
			s.mtx.Unlock()
			return
		}
		s.reconnectTimer = nil
		s.startDialLocked(onMessage, onError)
		s.mtx.Unlock()
	})
}

func (s *service) clearReconnectTimer() {
	if s.reconnectTimer != nil {
		s.reconnectTimer.Stop()
		s.reconnectTimer = nil
	}
}

func (s *service) closeNormally(conn *websocket.Conn) {
	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "user disconnected")
	if err := conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
		log.WithError(err).Debug("streamer: failed to send close message")
	}
	conn.Close()
}

func backoffDelay(attempts int, base, max time.Duration) time.Duration {
	delay := base << uint(attempts)
	if delay > max || delay <= 0 {
		delay = max
	}
	return delay
}
