package batchlog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/skein-dev/skein/internal/logging"
)

// DefaultPollInterval is how long the watcher waits between fetches.
const DefaultPollInterval = 200 * time.Millisecond

// ErrAlreadyStarted reports a second Start on the same watcher.
var ErrAlreadyStarted = errors.New("watcher already started")

// Consumer receives each unique log entry exactly once, in the order entries
// are first observed. It runs on the watcher's goroutine; a slow consumer
// delays the next poll and delays observation of a stop request. A returned
// error is reported as a warning and does not stop the watcher.
type Consumer func(Entry) error

// Fetcher produces all entries in a stream at or after a start timestamp.
// *Source implements it; tests substitute scripted fakes.
type Fetcher interface {
	Fetch(ctx context.Context, stream string, startTime *int64) ([]Entry, error)
}

// Watcher monitors a job log stream in the background and passes each log
// entry to a consumer. Call Start to begin watching, then Stop and Join to
// shut down. A Watcher is not reusable once it has stopped.
//
// The poll cursor is the timestamp of the last delivered entry. Refetching
// from that timestamp is inclusive, so the tail of the previous poll comes
// back again; the watcher suppresses those duplicates by event id. Entry ids
// older than the cursor can never be fetched again and are evicted, keeping
// the dedup set bounded. Cursor and dedup set live entirely on the watcher
// goroutine, so they need no locking.
type Watcher struct {
	stream    string
	consumer  Consumer
	source    Fetcher
	interval  time.Duration
	logger    logging.Logger
	startTime *int64

	mu      sync.Mutex
	started bool

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithInterval overrides the poll interval.
func WithInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithStartTime sets a lower bound (milliseconds since the epoch) for the
// first poll. Without it the watcher fetches the stream from its beginning.
func WithStartTime(ms int64) WatcherOption {
	return func(w *Watcher) {
		w.startTime = &ms
	}
}

// WithLogger sets the logger used to report fetch and consumer failures.
func WithLogger(l logging.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWatcher creates a watcher over the named stream. The consumer is not
// invoked until Start is called.
func NewWatcher(source Fetcher, stream string, consumer Consumer, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		stream:   stream,
		consumer: consumer,
		source:   source,
		interval: DefaultPollInterval,
		logger:   logging.NopLogger{},
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start launches the background watch goroutine. It may be called once;
// starting a watcher that was stopped before it ever ran is allowed and
// results in a goroutine that exits immediately.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}
	w.started = true

	go w.run()
	return nil
}

// Stop tells the watcher to cease watching for new logs. It is idempotent
// and safe to call before Start. Stopping is cooperative: an in-flight fetch
// or consumer call finishes first, and the request is observed at the top of
// the next loop iteration, within one poll interval. Call Join afterwards to
// wait for the goroutine to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
}

// Join blocks until the watch goroutine has exited. After Join returns no
// further consumer invocations occur. Joining a watcher that was never
// started returns immediately.
func (w *Watcher) Join() {
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()

	if !started {
		return
	}
	<-w.done
}

func (w *Watcher) run() {
	defer close(w.done)

	timer := time.NewTimer(w.interval)
	defer timer.Stop()

	// cursor is the timestamp of the last entry handed to the consumer,
	// used as the (inclusive) lower bound of the next fetch. seen maps
	// delivered entry ids to their timestamps so overlap can be both
	// suppressed and later evicted.
	cursor := w.startTime
	seen := make(map[string]int64)

	for {
		select {
		case <-w.stop:
			return
		case <-timer.C:
		}

		// The stop request wins if it raced the timer.
		select {
		case <-w.stop:
			return
		default:
		}

		entries, err := w.source.Fetch(context.Background(), w.stream, cursor)
		if err != nil {
			// Transient fetch failures must not kill a long-lived
			// watcher. Leave the cursor and dedup set alone and
			// try again next interval.
			w.logger.Warn("fetching logs for stream %s: %v", w.stream, err)
		} else {
			for _, entry := range entries {
				if _, dup := seen[entry.ID]; dup {
					continue
				}
				seen[entry.ID] = entry.Timestamp

				ts := entry.Timestamp
				cursor = &ts

				if err := w.consumer(entry); err != nil {
					w.logger.Warn("log consumer failed on entry %s: %v", entry.ID, err)
				}
			}

			// Only entries with timestamp >= cursor can ever be
			// refetched, so older ids are safe to forget.
			if cursor != nil {
				for id, ts := range seen {
					if ts < *cursor {
						delete(seen, id)
					}
				}
			}
		}

		timer.Reset(w.interval)
	}
}
