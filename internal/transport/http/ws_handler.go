package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"invite-quiz-service/internal/lib/sl"
	"invite-quiz-service/internal/lib/validate"

	"github.com/gorilla/websocket"
)

// WSHandler streams the rendered view to a client after every state change
// and accepts quiz actions over the same connection.
type WSHandler struct {
	ctrl     Controller
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(log *slog.Logger, ctrl Controller) *WSHandler {
	return &WSHandler{
		ctrl: ctrl,
		log:  log.With(sl.Module("http.ws")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type invitePayload struct {
	Code string `json:"code"`
}

type answerPayload struct {
	Option *int `json:"option" validate:"required,min=0,max=3"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type answerOutcome struct {
	Correct bool `json:"correct"`
}

// ServeWS upgrades the request and wires it into the controller.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", sl.Err(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	updates, cancel := h.ctrl.Subscribe(ctx)
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Only the writer goroutine touches conn for writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug("ws write failed", sl.Err(err))
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case state, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "view", Payload: publicView(state)}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	reply := func(msg outboundMessage[any]) {
		select {
		case send <- msg:
		case <-writerDone:
		}
	}
	replyError := func(message string) {
		reply(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: message}})
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "invite":
			var payload invitePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				replyError("invalid invite payload")
				continue
			}
			if _, err := h.ctrl.SubmitInviteCode(ctx, payload.Code); err != nil {
				h.log.Error("submit invite code", sl.Err(err))
				replyError("Internal error")
			}
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				replyError("invalid answer payload")
				continue
			}
			if err := validate.Struct(payload); err != nil {
				replyError(err.Error())
				continue
			}
			correct := h.ctrl.Answer(ctx, *payload.Option)
			reply(outboundMessage[any]{Type: "answerResult", Payload: answerOutcome{Correct: correct}})
		case "reset":
			h.ctrl.Reset(ctx)
		default:
			replyError("unsupported message type")
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
