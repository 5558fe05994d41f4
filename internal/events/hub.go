package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
)

var ErrUnknownTopic = errors.New("unknown subscription topic")

// SourceFunc loads the current snapshot for a key on its topic. The hub
// re-invokes it after every matching notification, so it must return the
// full replacement value, not a delta.
type SourceFunc func(ctx context.Context, key string) (any, error)

// feed is one shared materialization of (topic, key). All subscribers for the
// same pair attach to the same feed, so the database is queried once per
// change no matter how many clients are watching.
type feed struct {
	topic string
	key   string
	kick  chan struct{}
	stop  chan struct{}

	mu      sync.Mutex
	stopped bool
	sinks   map[chan any]struct{}
}

// Hub bridges Postgres NOTIFY events to in-process subscription channels.
// Subscribers receive a snapshot immediately, then a fresh snapshot after
// every committed change matching their key. Delivery is latest-wins: a slow
// consumer sees the newest state, never a backlog of stale intermediates.
type Hub struct {
	conninfo string
	logger   *slog.Logger

	mu      sync.Mutex
	sources map[string]SourceFunc
	feeds   map[string]*feed
}

func NewHub(conninfo string, logger *slog.Logger) *Hub {
	return &Hub{
		conninfo: conninfo,
		logger:   logger,
		sources:  make(map[string]SourceFunc),
		feeds:    make(map[string]*feed),
	}
}

// RegisterSource binds a topic to its snapshot loader. Must be called before
// Subscribe for that topic; typically all sources are registered at startup.
func (h *Hub) RegisterSource(topic string, src SourceFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sources[topic] = src
}

// Subscribe returns a channel carrying snapshots for (topic, key). The first
// snapshot is fetched eagerly. The channel is closed when ctx is cancelled or
// when a snapshot fetch fails; after a failure the subscriber keeps whatever
// value it last received.
func (h *Hub) Subscribe(ctx context.Context, topic, key string) (<-chan any, error) {
	h.mu.Lock()
	src, ok := h.sources[topic]
	if !ok {
		h.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}

	id := topic + "\x00" + key
	sink := make(chan any, 1)
	f, ok := h.feeds[id]
	if !ok {
		f = &feed{
			topic: topic,
			key:   key,
			kick:  make(chan struct{}, 1),
			stop:  make(chan struct{}),
			sinks: map[chan any]struct{}{sink: {}},
		}
		h.feeds[id] = f
		// The feed loop's first fetch doubles as this sink's initial snapshot.
		go h.runFeed(f, src)
	} else {
		f.mu.Lock()
		f.sinks[sink] = struct{}{}
		f.mu.Unlock()
	}
	h.mu.Unlock()

	// Late joiners on an existing feed still need an initial snapshot.
	if ok {
		if snap, err := src(ctx, key); err == nil {
			// A concurrent broadcast may have filled the buffer already,
			// in which case its snapshot is at least as fresh as ours.
			select {
			case sink <- snap:
			default:
			}
		} else {
			h.logger.Error("initial snapshot failed",
				"topic", topic, "key", key, "error", err)
			h.detach(f, sink)
			return sink, nil
		}
	}

	go func() {
		<-ctx.Done()
		h.detach(f, sink)
	}()
	return sink, nil
}

// runFeed owns the fetch loop for one (topic, key) pair.
func (h *Hub) runFeed(f *feed, src SourceFunc) {
	ctx := context.Background()
	for {
		snap, err := src(ctx, f.key)
		if err != nil {
			h.logger.Error("snapshot fetch failed, closing feed",
				"topic", f.topic, "key", f.key, "error", err)
			h.dropFeed(f)
			return
		}
		f.broadcast(snap)

		select {
		case <-f.kick:
		case <-f.stop:
			return
		}
	}
}

func (f *feed) broadcast(snap any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for sink := range f.sinks {
		for {
			select {
			case sink <- snap:
			default:
				// Drop the stale buffered value and retry with the new one.
				select {
				case <-sink:
				default:
				}
				continue
			}
			break
		}
	}
}

// detach removes and closes one sink. The last sink leaving stops the feed.
func (h *Hub) detach(f *feed, sink chan any) {
	f.mu.Lock()
	_, present := f.sinks[sink]
	delete(f.sinks, sink)
	empty := len(f.sinks) == 0
	f.mu.Unlock()

	if present {
		close(sink)
	}
	if empty {
		h.dropFeed(f)
	}
}

// dropFeed unregisters the feed, stops its loop, and closes any remaining
// sinks. Safe to call from multiple paths; each sink is closed exactly once
// because removal from the map happens under the feed lock.
func (h *Hub) dropFeed(f *feed) {
	h.mu.Lock()
	id := f.topic + "\x00" + f.key
	if h.feeds[id] == f {
		delete(h.feeds, id)
	}
	h.mu.Unlock()

	f.mu.Lock()
	if !f.stopped {
		f.stopped = true
		close(f.stop)
	}
	orphans := make([]chan any, 0, len(f.sinks))
	for sink := range f.sinks {
		orphans = append(orphans, sink)
		delete(f.sinks, sink)
	}
	f.mu.Unlock()

	for _, sink := range orphans {
		close(sink)
	}
}

// dispatch kicks every feed whose key matches one of the colon-separated
// tokens in the payload. KeyAll feeds match everything on their topic.
func (h *Hub) dispatch(channel, payload string) {
	tokens := strings.Split(payload, ":")

	h.mu.Lock()
	var matched []*feed
	for _, f := range h.feeds {
		if f.topic != channel {
			continue
		}
		if f.key == KeyAll || containsToken(tokens, matchToken(f.key)) {
			matched = append(matched, f)
		}
	}
	h.mu.Unlock()

	for _, f := range matched {
		select {
		case f.kick <- struct{}{}:
		default:
		}
	}
}

// kickAll refreshes every feed, used after a listener reconnect when
// notifications may have been missed.
func (h *Hub) kickAll() {
	h.mu.Lock()
	feeds := make([]*feed, 0, len(h.feeds))
	for _, f := range h.feeds {
		feeds = append(feeds, f)
	}
	h.mu.Unlock()

	for _, f := range feeds {
		select {
		case f.kick <- struct{}{}:
		default:
		}
	}
}

func containsToken(tokens []string, key string) bool {
	for _, t := range tokens {
		if t == key {
			return true
		}
	}
	return false
}

// Run connects the LISTEN session and pumps notifications into dispatch until
// ctx is cancelled. lib/pq reconnects on its own; a nil notification marks a
// reconnect, after which every feed is refreshed to cover the gap.
func (h *Hub) Run(ctx context.Context) error {
	listener := pq.NewListener(h.conninfo, 10*time.Second, time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				h.logger.Error("listener event", "event", int(ev), "error", err)
			}
		})
	defer listener.Close()

	for _, ch := range []string{ChannelPosts, ChannelLikes, ChannelComments, ChannelProfiles} {
		if err := listener.Listen(ch); err != nil {
			return fmt.Errorf("listen %s: %w", ch, err)
		}
	}
	h.logger.Info("notification listener started")

	ping := time.NewTicker(90 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-listener.Notify:
			if n == nil {
				h.logger.Warn("listener reconnected, refreshing all feeds")
				h.kickAll()
				continue
			}
			h.dispatch(n.Channel, n.Extra)
		case <-ping.C:
			if err := listener.Ping(); err != nil {
				h.logger.Error("listener ping failed", "error", err)
			}
		}
	}
}
