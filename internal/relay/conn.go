package relay

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/wordris/internal/multiplayer"
)

const (
	readTimeout  = 120 * time.Second
	writeTimeout = 10 * time.Second
	pingPeriod   = 30 * time.Second
	maxNameLen   = 24
)

// conn is one websocket client bridged to a matchmaker session.
type conn struct {
	ws      *websocket.Conn
	session *multiplayer.ChannelSession
	send    chan []byte
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	id := multiplayer.NewSessionID()
	c := &conn{
		ws:      ws,
		session: multiplayer.NewChannelSession(id, playerName(r, id), 64),
		send:    make(chan []byte, 64),
	}
	s.sessions.Register(c.session)
	s.logger.Info("player connected", "session", id, "name", c.session.Name(), "remote", r.RemoteAddr)

	go s.writePump(c)
	s.readPump(c)
}

// playerName takes the name from the query string, falling back to a short
// form of the session ID.
func playerName(r *http.Request, id multiplayer.SessionID) string {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		name = "guest-" + string(id)[:8]
	}
	if runes := []rune(name); len(runes) > maxNameLen {
		name = string(runes[:maxNameLen])
	}
	return name
}

func (s *Server) readPump(c *conn) {
	id := c.session.ID()
	defer func() {
		s.matchmaker.Send(multiplayer.SessionDisconnectedMsg{SessionID: id})
		s.sessions.Unregister(id)
		c.session.Close()
		_ = c.ws.Close()
		s.logger.Info("player disconnected", "session", id)
	}()

	_ = c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	c.ws.SetPongHandler(func(string) error {
		_ = c.ws.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read", "session", id, "err", err)
			}
			return
		}

		var in InMsg
		if err := json.Unmarshal(data, &in); err != nil {
			c.sendErr("", "BAD_JSON", "invalid json")
			continue
		}

		switch in.T {
		case TypePing:
			c.sendMsg(OutMsg{T: TypePong, ReqID: in.ReqID})

		case TypeSearch:
			var p SearchPayload
			if err := json.Unmarshal(in.P, &p); err != nil || p.Pack == "" {
				c.sendErr(in.ReqID, "BAD_PAYLOAD", "pack is required")
				continue
			}
			s.matchmaker.Send(multiplayer.SearchMsg{SessionID: id, PackID: p.Pack})

		case TypeCancel:
			s.matchmaker.Send(multiplayer.CancelSearchMsg{SessionID: id})

		case TypeDetails:
			var p DetailsPayload
			if err := json.Unmarshal(in.P, &p); err != nil || p.Score < 0 || p.Words < 0 {
				c.sendErr(in.ReqID, "BAD_PAYLOAD", "invalid details")
				continue
			}
			s.matchmaker.Send(multiplayer.DetailsMsg{
				SessionID: id,
				Details:   multiplayer.Details{Score: p.Score, Words: p.Words, GameOver: p.Over},
			})

		case TypeLeave:
			s.matchmaker.Send(multiplayer.LeaveMsg{SessionID: id})

		default:
			c.sendErr(in.ReqID, "UNKNOWN_TYPE", "unknown message type: "+in.T)
		}
	}
}

// writePump is the only writer on the socket. It forwards direct replies,
// matchmaker events and keepalive pings until the session closes.
func (s *Server) writePump(c *conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	self := c.session.ID()
	for {
		select {
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				return
			}
		case evt := <-c.session.Events():
			out, ok := encodeEvent(self, evt)
			if !ok {
				continue
			}
			b, err := json.Marshal(out)
			if err != nil {
				continue
			}
			if err := c.write(websocket.TextMessage, b); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.session.Done():
			return
		}
	}
}

func (c *conn) write(messageType int, data []byte) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteMessage(messageType, data)
}

func (c *conn) sendMsg(out OutMsg) {
	b, err := json.Marshal(out)
	if err != nil {
		return
	}
	select {
	case c.send <- b:
	default:
	}
}

func (c *conn) sendErr(reqID, code, msg string) {
	c.sendMsg(OutMsg{T: TypeError, ReqID: reqID, P: ErrPayload{Code: code, Msg: msg}})
}
