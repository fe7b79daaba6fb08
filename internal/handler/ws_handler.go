package handler

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/middleware"
	"github.com/stemsi/gatemock-backend/internal/response"
	"github.com/stemsi/gatemock-backend/internal/service"
	ws "github.com/stemsi/gatemock-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams the exam countdown and accepts in-exam actions.
type WSHandler struct {
	examService *service.ExamService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(examService *service.ExamService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		examService: examService,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// wsConn serializes writes; gorilla allows a single concurrent writer.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsConn) write(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return ws.WriteTyped(w.conn, v)
}

func (w *wsConn) writeError(err error) error {
	_, code := classify(err)
	w.mu.Lock()
	defer w.mu.Unlock()
	return ws.WriteError(w.conn, string(code), err.Error())
}

// ExamStream godoc
// WS /ws/v1/exam/stream
// Pushes tick and submitted events; accepts answer, navigate, mark, submit,
// state and ping actions.
func (h *WSHandler) ExamStream(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrSignInRequired)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("user_id", user.ID).Logger()
	wsLog.Info().Msg("Client connected")

	out := &wsConn{conn: conn}
	events, unsubscribe := h.examService.Subscribe(user.ID)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ev := range events {
			if err := out.write(ev); err != nil {
				wsLog.Debug().Err(err).Msg("Event write failed")
			}
		}
	}()
	defer wg.Wait()
	defer unsubscribe()

	_ = out.write(ws.StateResponse{Event: ws.EventState, State: h.examService.State(user.ID)})

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		h.handleAction(c.Request.Context(), out, wsLog, user.ID, &msg)
	}
}

func (h *WSHandler) handleAction(ctx context.Context, out *wsConn, wsLog zerolog.Logger, userID string, msg *ws.RequestPayload) {
	var (
		update *service.FlowUpdate
		err    error
	)

	switch msg.Action {
	case ws.ActionPing:
		_ = out.write(ws.PongResponse{Event: ws.EventPong})
		return
	case ws.ActionState:
		_ = out.write(ws.StateResponse{Event: ws.EventState, State: h.examService.State(userID)})
		return
	case ws.ActionAnswer:
		if msg.Index == nil || msg.Option == nil {
			_ = out.writeError(errMissingField("index and option"))
			return
		}
		update, err = h.examService.SelectAnswer(userID, *msg.Index, *msg.Option)
	case ws.ActionNavigate:
		switch {
		case msg.Direction == "next":
			update, err = h.examService.Next(userID)
		case msg.Direction == "previous":
			update, err = h.examService.Previous(userID)
		case msg.Index != nil:
			update, err = h.examService.Navigate(userID, *msg.Index)
		default:
			_ = out.writeError(errMissingField("index or direction"))
			return
		}
	case ws.ActionMark:
		if msg.Index == nil {
			_ = out.writeError(errMissingField("index"))
			return
		}
		update, err = h.examService.MarkForReview(userID, *msg.Index)
	case ws.ActionSubmit:
		update, err = h.examService.Submit(ctx, userID)
	default:
		wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
		_ = out.writeError(errUnknownAction(string(msg.Action)))
		return
	}

	if err != nil {
		_ = out.writeError(err)
		return
	}
	_ = out.write(ws.StateResponse{Event: ws.EventState, State: update})
}
