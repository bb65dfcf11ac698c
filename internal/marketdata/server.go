package marketdata

import (
	"encoding/binary"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/rishav/order-matching-engine/internal/ids"
)

// Server exposes the Publisher over websocket: one connection per
// subscriber, query-parameterized by symbol (?sec=SEC001) or all-symbols
// if omitted. Grounded on the pack's gorilla/websocket usage for
// streaming feeds (see SPEC_FULL.md §C).
type Server struct {
	pub *Publisher
	log zerolog.Logger
	up  websocket.Upgrader
}

func NewServer(pub *Publisher, log zerolog.Logger) *Server {
	return &Server{pub: pub, log: log, up: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 4096}}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.up.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("marketdata websocket upgrade failed")
		return
	}
	defer conn.Close()

	var updates <-chan Update
	if sec := r.URL.Query().Get("sec"); sec != "" {
		updates = s.pub.Subscribe(ids.NewSecurityID(sec))
	} else {
		updates = s.pub.SubscribeAll()
	}

	for u := range updates {
		if err := conn.WriteMessage(websocket.BinaryMessage, encodeUpdate(u)); err != nil {
			return
		}
	}
}

// encodeUpdate is a compact, purely-informational wire form — not subject
// to spec §6's bit-exact contract, since market data is an out-of-scope
// external collaborator (spec §1).
func encodeUpdate(u Update) []byte {
	if u.Trade != nil {
		buf := make([]byte, 1+8+8)
		buf[0] = 'T'
		copy(buf[1:9], u.Trade.SecurityID[:])
		binary.LittleEndian.PutUint64(buf[9:17], uint64(u.Trade.Price))
		return buf
	}
	buf := make([]byte, 1+8)
	buf[0] = 'D'
	copy(buf[1:9], u.Depth.SecurityID[:])
	return buf
}
