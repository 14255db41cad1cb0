package transfer

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/lumipallolabs/sftpdive/internal/model"
)

// fakePort implements remote.Port over in-memory listings and contents
type fakePort struct {
	mu          sync.Mutex
	listings    map[string][]model.Entry
	contents    map[string][]byte
	listErr     map[string]error
	openErr     map[string]error
	failRead    map[string]int64 // serve this many bytes, then fail the read
	readDelay   time.Duration
	listed      []string
	openTimes   []time.Time
	inFlight    int
	maxInFlight int
}

func newFakePort() *fakePort {
	return &fakePort{
		listings: make(map[string][]model.Entry),
		contents: make(map[string][]byte),
		listErr:  make(map[string]error),
		openErr:  make(map[string]error),
		failRead: make(map[string]int64),
	}
}

func (p *fakePort) addDir(path string, entries ...model.Entry) {
	p.listings[path] = entries
}

func (p *fakePort) addFile(path string, data []byte) {
	p.contents[path] = data
}

func (p *fakePort) List(path string) ([]model.Entry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listed = append(p.listed, path)
	if err := p.listErr[path]; err != nil {
		return nil, err
	}
	entries, ok := p.listings[path]
	if !ok {
		return nil, fmt.Errorf("list %s: no such directory", path)
	}
	return entries, nil
}

func (p *fakePort) Open(path string) (io.ReadCloser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.openTimes = append(p.openTimes, time.Now())
	if err := p.openErr[path]; err != nil {
		return nil, err
	}
	data, ok := p.contents[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", path)
	}
	p.inFlight++
	if p.inFlight > p.maxInFlight {
		p.maxInFlight = p.inFlight
	}
	failAfter := int64(-1)
	if n, ok := p.failRead[path]; ok {
		failAfter = n
	}
	return &fakeStream{port: p, data: data, failAfter: failAfter, delay: p.readDelay}, nil
}

func (p *fakePort) Close() error { return nil }

// fakeStream serves a byte slice, optionally failing after failAfter bytes
type fakeStream struct {
	port      *fakePort
	data      []byte
	off       int
	failAfter int64 // -1 disables
	delay     time.Duration
	closed    bool
}

func (s *fakeStream) Read(b []byte) (int, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.failAfter >= 0 && int64(s.off) >= s.failAfter {
		return 0, errors.New("connection reset by peer")
	}
	if s.off >= len(s.data) {
		return 0, io.EOF
	}
	n := copy(b, s.data[s.off:])
	if s.failAfter >= 0 && int64(s.off+n) > s.failAfter {
		n = int(s.failAfter) - s.off
	}
	s.off += n
	return n, nil
}

func (s *fakeStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.port.mu.Lock()
	s.port.inFlight--
	s.port.mu.Unlock()
	return nil
}

// drainEvents empties whatever is buffered on the channel right now
func drainEvents(ch <-chan Event) []Event {
	var out []Event
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// payload builds a deterministic byte pattern of the given size
func payload(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}
