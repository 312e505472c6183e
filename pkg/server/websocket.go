package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	portalerrors "github.com/systra-connect/portal/internal/errors"
	"github.com/systra-connect/portal/pkg/navigation"
)

// Navigation session operations.
const (
	OpNavigate = "navigate"
	OpBack     = "back"
	OpForward  = "forward"
)

// Frame types sent to the client.
const (
	FrameResolution = "resolution"
	FrameError      = "error"
)

const writeWait = 10 * time.Second

// NavigateMessage is a client request on /ws/navigate.
type NavigateMessage struct {
	Op      string            `json:"op"`
	Path    string            `json:"path,omitempty"`
	Replace bool              `json:"replace,omitempty"`
	Query   map[string]string `json:"query,omitempty"`
}

// Frame is the server's reply to one NavigateMessage.
type Frame struct {
	Type       string                 `json:"type"`
	Resolution *navigation.Resolution `json:"resolution,omitempty"`
	History    []string               `json:"history,omitempty"`
	Index      int                    `json:"index"`
	Error      *errorBody             `json:"error,omitempty"`
}

// handleNavigate upgrades to a navigation session. Each session owns one
// Navigator and handles its messages in order.
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.metrics.RecordWebSocketError("upgrade")
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.metrics.RecordSessionOpen()
	defer s.metrics.RecordSessionClose()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadLimit(s.config.MaxMessageSize)
	deadline := 2 * s.config.PingInterval
	_ = conn.SetReadDeadline(time.Now().Add(deadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(deadline))
	})
	go s.heartbeat(ctx, conn)

	log := s.logger.With("remote", r.RemoteAddr)
	log.Debug("navigation session opened")
	nav := navigation.NewNavigator(s.table, navigation.WithMaxHistory(s.config.MaxHistory))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.metrics.RecordWebSocketError("read")
				log.Debug("navigation session read failed", "error", err)
			}
			break
		}

		var frame Frame
		var msg NavigateMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.metrics.RecordNavigationError("E601")
			frame = errorFrame(portalerrors.New("E601").WithDetailf("Malformed message: %v", err).Wrap(err), nav)
		} else {
			frame = s.dispatch(ctx, nav, msg)
		}
		if err := s.writeFrame(conn, frame); err != nil {
			s.metrics.RecordWebSocketError("write")
			log.Debug("navigation session write failed", "error", err)
			break
		}
	}
	log.Debug("navigation session closed")
}

// dispatch runs one message against the session's navigator.
func (s *Server) dispatch(ctx context.Context, nav *navigation.Navigator, msg NavigateMessage) Frame {
	var (
		res *navigation.Resolution
		err error
	)
	switch msg.Op {
	case OpNavigate:
		var opts []navigation.NavigateOption
		if msg.Replace {
			opts = append(opts, navigation.WithReplace())
		}
		if len(msg.Query) > 0 {
			opts = append(opts, navigation.WithQuery(msg.Query))
		}
		res, err = nav.Navigate(ctx, msg.Path, opts...)
	case OpBack:
		res, err = nav.Back()
	case OpForward:
		res, err = nav.Forward()
	default:
		err = portalerrors.New("E601").WithDetailf("Unknown operation %q.", msg.Op)
	}

	if err != nil {
		s.metrics.RecordNavigationError(portalerrors.CodeOf(err))
		return errorFrame(err, nav)
	}
	s.metrics.RecordNavigation(res.State.String())
	history, index := nav.History()
	return Frame{Type: FrameResolution, Resolution: res, History: history, Index: index}
}

func errorFrame(err error, nav *navigation.Navigator) Frame {
	body := bodyOf(err)
	history, index := nav.History()
	return Frame{Type: FrameError, Error: &body, History: history, Index: index}
}

func (s *Server) writeFrame(conn *websocket.Conn, frame Frame) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(frame)
}

// heartbeat pings the client until ctx is done. WriteControl may run
// concurrently with the session's other writes.
func (s *Server) heartbeat(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
