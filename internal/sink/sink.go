// Package sink implements the outbound record sink contract of spec §6:
// send(bytes) must never fail from the engine's point of view, and the
// sink owns its own backpressure.
//
// Grounded on the teacher's internal/events.EventLog: a buffered,
// sequentially-written file of length-prefixed records. The gob envelope
// and CRC32 checksum are dropped — EXE already hands the sink a bit-exact
// wire encoding (spec §6), so re-wrapping it in another format would just
// be redundant framing — but the bufio.Writer-over-os.File shape and the
// counters it exposed on Close are kept.
package sink

import (
	"bufio"
	"os"
	"sync"
)

// Sink is implemented by every outbound record destination.
type Sink interface {
	Send(record []byte)
	Close() (Stats, error)
}

// Stats mirrors what the teacher's Engine.close() returned: counters the
// caller can observe once the sink stops accepting records (spec §6 —
// close() returns the sink so counters remain observable).
type Stats struct {
	RecordsSent int64
	BytesSent   int64
}

// FileSink appends every record to a file, length-prefix included, with
// no internal re-framing. Send blocks on a full OS write buffer — this is
// the "file sink blocks" backpressure policy chosen for bounded inter-
// stage queues (see SPEC_FULL.md §E).
type FileSink struct {
	mu    sync.Mutex
	f     *os.File
	w     *bufio.Writer
	stats Stats
}

func NewFileSink(path string) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileSink{f: f, w: bufio.NewWriterSize(f, 64*1024)}, nil
}

func (s *FileSink) Send(record []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.w.Write(record)
	if err != nil {
		// The sink contract is non-failing from the engine's view (spec
		// §6); a write error here means the underlying file/device is
		// gone, which is outside what the engine can recover from.
		panic(err)
	}
	s.stats.RecordsSent++
	s.stats.BytesSent += int64(n)
}

func (s *FileSink) Close() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.w.Flush(); err != nil {
		return s.stats, err
	}
	return s.stats, s.f.Close()
}

// NullSink discards every record while still counting it. Used by tests.
type NullSink struct {
	mu    sync.Mutex
	stats Stats
}

func NewNullSink() *NullSink { return &NullSink{} }

func (s *NullSink) Send(record []byte) {
	s.mu.Lock()
	s.stats.RecordsSent++
	s.stats.BytesSent += int64(len(record))
	s.mu.Unlock()
}

func (s *NullSink) Close() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats, nil
}
