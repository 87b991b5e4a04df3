package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/RavelOrg/ravel"
)

// DecodeFunc turns a raw websocket frame into a change. Returning a nil
// change with a nil error skips the frame.
type DecodeFunc func(messageType int, data []byte) (ravel.Change, error)

const (
	defaultInitialBackoff = time.Second
	defaultMaxBackoff     = 30 * time.Second
)

// SocketConfig configures a reconnecting websocket feed.
type SocketConfig struct {
	// URL is the websocket endpoint to dial.
	URL string

	// Decode converts incoming frames into changes.
	Decode DecodeFunc

	// Subscribe, if non-nil, is sent as a JSON frame after every
	// successful connect.
	Subscribe any

	// OnStatus, if non-nil, is called on every status transition.
	OnStatus func(Status)

	// Dialer defaults to websocket.DefaultDialer.
	Dialer *websocket.Dialer

	// InitialBackoff and MaxBackoff bound the reconnect delay.
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Socket maintains a websocket connection, decoding frames into changes and
// submitting them to a store. It reconnects with exponential backoff until
// its context is cancelled or the store closes.
type Socket struct {
	cfg SocketConfig

	mu     sync.Mutex
	conn   *websocket.Conn
	status Status
}

// NewSocket validates the config and returns a socket ready to Run.
func NewSocket(cfg SocketConfig) (*Socket, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("feed: empty socket url")
	}
	if cfg.Decode == nil {
		return nil, fmt.Errorf("feed: nil decode func")
	}
	if cfg.Dialer == nil {
		cfg.Dialer = websocket.DefaultDialer
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = defaultInitialBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = defaultMaxBackoff
	}
	return &Socket{cfg: cfg, status: StatusDisconnected}, nil
}

// Status reports the current connection status.
func (s *Socket) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Run dials the endpoint and pumps decoded changes into submit until ctx is
// cancelled or the store closes. It blocks for the lifetime of the feed.
func (s *Socket) Run(ctx context.Context, submit SubmitFunc) error {
	defer s.setStatus(StatusClosed)

	backoff := s.cfg.InitialBackoff
	connected := false

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if connected {
			s.setStatus(StatusReconnecting)
		} else {
			s.setStatus(StatusConnecting)
		}

		conn, _, err := s.cfg.Dialer.DialContext(ctx, s.cfg.URL, nil)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff = min(backoff*2, s.cfg.MaxBackoff)
			continue
		}

		s.setConn(conn)
		s.setStatus(StatusConnected)
		connected = true
		backoff = s.cfg.InitialBackoff

		if s.cfg.Subscribe != nil {
			if err := conn.WriteJSON(s.cfg.Subscribe); err != nil {
				s.dropConn()
				s.setStatus(StatusDisconnected)
				continue
			}
		}

		err = s.readLoop(ctx, conn, submit)
		s.dropConn()
		if errors.Is(err, context.Canceled) || errors.Is(err, ravel.ErrClosed) {
			return err
		}
		s.setStatus(StatusDisconnected)
	}
}

// readLoop reads frames until the connection drops or ctx is cancelled. A
// watcher goroutine closes the connection on cancellation to unblock the
// blocking read.
func (s *Socket) readLoop(ctx context.Context, conn *websocket.Conn, submit SubmitFunc) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		change, err := s.cfg.Decode(messageType, data)
		if err != nil || change == nil {
			continue
		}

		if err := submit(change); err != nil {
			if errors.Is(err, ravel.ErrClosed) {
				return err
			}
			// Queue full: drop the change and keep reading.
		}
	}
}

func (s *Socket) setConn(conn *websocket.Conn) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
}

func (s *Socket) dropConn() {
	s.mu.Lock()
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	s.mu.Unlock()
}

func (s *Socket) setStatus(st Status) {
	s.mu.Lock()
	if s.status == st {
		s.mu.Unlock()
		return
	}
	s.status = st
	s.mu.Unlock()
	if s.cfg.OnStatus != nil {
		s.cfg.OnStatus(st)
	}
}
