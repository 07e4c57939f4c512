package transport

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/luma/marbus/storage"
)

// WebsocketHandler streams every store update to the client as a text frame
//
//	{"key":"nmea.GP.XTR","value":{...}}
//
// Messages from the client are ignored. Updates are dropped for clients that
// cannot keep up, see storage.UpdateBufferSize.
func WebsocketHandler(store storage.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			log.Warn("WebSocket upgrade failed", zap.Error(err))
			return
		}

		id := uuid.New().String()
		log := log.With(zap.String("conn", id), zap.String("remote", r.RemoteAddr))
		log.Info("WebSocket client connected")

		updates := store.ListenToUpdates()
		defer store.StopListening(updates)

		// CloseRead discards client messages and cancels ctx once the client
		// goes away.
		ctx := conn.CloseRead(r.Context())

		for {
			select {
			case <-ctx.Done():
				conn.Close(websocket.StatusNormalClosure, "")
				log.Info("WebSocket client disconnected")
				return

			case update, ok := <-updates:
				if !ok {
					conn.Close(websocket.StatusGoingAway, "store closed")
					return
				}

				if err := writeUpdate(ctx, conn, update); err != nil {
					log.Debug("WebSocket write failed", zap.Error(err))
					conn.Close(websocket.StatusInternalError, "write failed")
					return
				}
			}
		}
	}
}

func writeUpdate(ctx context.Context, conn *websocket.Conn, update *storage.Update) error {
	msg, err := sjson.SetBytes([]byte(`{}`), "key", string(update.Key))
	if err != nil {
		return err
	}

	msg, err = sjson.SetRawBytes(msg, "value", update.Value)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, WriteTimeout)
	defer cancel()

	return conn.Write(ctx, websocket.MessageText, msg)
}
