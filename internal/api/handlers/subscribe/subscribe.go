package subscribe

import (
	"Bislei/internal/api/handlers"
	"Bislei/internal/api/middleware"
	"Bislei/internal/events"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler upgrades requests to WebSocket and streams whole-value snapshots
// for one subscription topic. Every frame replaces the previous one; clients
// never apply deltas.
type Handler struct {
	hub      *events.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func New(hub *events.Hub, logger *slog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The bearer token already gates this endpoint
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleSubscribe opens a snapshot stream
// GET /ws/subscribe?topic=posts|myposts|likes|comments|profiles&key=...
//
// Topic "posts" streams one post's snapshot by id, or the global feed with
// key "*"; a post deleted mid-subscription yields a deletion marker. Topic
// "myposts" streams the viewer's own-posts list. Topic "likes" ignores the
// key parameter and streams the viewer's own liked-post set.
func (h *Handler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r)
	if viewerID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	topic, key, err := resolveTopic(r, viewerID)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	snapshots, err := h.hub.Subscribe(ctx, topic, key)
	if err != nil {
		if errors.Is(err, events.ErrUnknownTopic) {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Unknown topic")
			return
		}
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Something went wrong")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// Reader goroutine exists only to process control frames and detect
	// closure
	go func() {
		defer cancel()
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				// Feed closed after a fetch failure; the client keeps its
				// last snapshot and reconnects
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "snapshot unavailable"),
					time.Now().Add(writeWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(map[string]any{
				"topic": topic,
				"key":   key,
				"data":  snap,
			}); err != nil {
				h.logger.Debug("websocket write failed", "error", err)
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte{},
				time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// resolveTopic maps the query parameters onto a hub topic and key, scoping
// viewer-private topics to the authenticated account
func resolveTopic(r *http.Request, viewerID string) (string, string, error) {
	topic := r.URL.Query().Get("topic")
	key := r.URL.Query().Get("key")

	switch topic {
	case "posts":
		if key == "" {
			return "", "", errors.New("key is required for topic posts")
		}
		if key == events.KeyAll {
			return events.ChannelPosts, events.KeyAll, nil
		}
		return events.ChannelPosts, events.PostKey(key), nil
	case "myposts":
		return events.ChannelPosts, events.AuthorKey(viewerID), nil
	case "likes":
		return events.ChannelLikes, viewerID, nil
	case "comments":
		if key == "" {
			return "", "", errors.New("key is required for topic comments")
		}
		return events.ChannelComments, key, nil
	case "profiles":
		if key == "" {
			key = viewerID
		}
		return events.ChannelProfiles, key, nil
	default:
		return "", "", errors.New("topic must be posts, myposts, likes, comments, or profiles")
	}
}
