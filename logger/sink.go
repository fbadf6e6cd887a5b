package logger

import (
	"fmt"
	"io"
	"sync"

	"github.com/eapache/queue"
)

// Sink receives fully formatted log lines. Implementations must be safe for
// concurrent use.
type Sink interface {
	Log(message string)
}

// =============================================================================
// WriterSink: mutex-guarded io.Writer sink
// =============================================================================

// WriterSink writes one line per message to an io.Writer (typically
// os.Stderr or a file), serialized by a mutex.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

var _ Sink = (*WriterSink)(nil)

// NewWriterSink creates a sink writing to w. The caller keeps ownership of w
// and is responsible for closing it.
func NewWriterSink(w io.Writer) *WriterSink {
	if w == nil {
		panic("logger: nil writer")
	}
	return &WriterSink{w: w}
}

// Log writes the message followed by a newline.
func (s *WriterSink) Log(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, message)
}

// =============================================================================
// AsyncSink: FIFO-buffered decorator around another sink
// =============================================================================

// AsyncSink decouples callers from a slow underlying sink. Log enqueues the
// message into an unbounded FIFO and returns; a single background goroutine
// drains the queue into the wrapped sink, preserving message order.
type AsyncSink struct {
	next Sink

	mu     sync.Mutex
	cond   *sync.Cond
	buf    *queue.Queue
	closed bool

	done chan struct{}
}

var _ Sink = (*AsyncSink)(nil)

// NewAsyncSink wraps next and starts the drain goroutine. Call Close to flush
// and stop it.
func NewAsyncSink(next Sink) *AsyncSink {
	if next == nil {
		panic("logger: nil sink")
	}
	s := &AsyncSink{
		next: next,
		buf:  queue.New(),
		done: make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	go s.drain()
	return s
}

// Log enqueues the message. Messages logged after Close are dropped.
func (s *AsyncSink) Log(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.buf.Add(message)
	s.cond.Signal()
}

// Close flushes every message already enqueued to the wrapped sink, stops the
// drain goroutine and waits for it to exit. Close is idempotent.
func (s *AsyncSink) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	s.cond.Signal()
	s.mu.Unlock()
	<-s.done
}

func (s *AsyncSink) drain() {
	defer close(s.done)

	s.mu.Lock()
	for {
		for s.buf.Length() == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.buf.Length() == 0 {
			s.mu.Unlock()
			return
		}
		message := s.buf.Remove().(string)
		s.mu.Unlock()

		s.next.Log(message)

		s.mu.Lock()
	}
}
