package api

import (
	"net/http"

	"github.com/thebeat/pipeline/pkg/logger"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// handleSubscribe upgrades GET /subscribe to a websocket and streams
// collection change notifications until the client goes away. Clients
// re-read the changed collection on receipt; payloads carry only the key.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // single-operator tool, same-host UI
	})
	if err != nil {
		logger.Get().Warn(r.Context(), "websocket accept failed", logger.Error(err))
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx := r.Context()
	changes, cancel := s.svc.Subscribe(ctx)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			if err := wsjson.Write(ctx, conn, change); err != nil {
				return
			}
		}
	}
}
