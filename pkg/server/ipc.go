package server

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// IPCServer answers msgpack search requests on a stream pair.
type IPCServer struct {
	service *Service
	reader  io.Reader
	writer  *bufio.Writer
	enc     *msgpack.Encoder
}

// NewIPCServer creates a server using stdin/stdout for IPC
func NewIPCServer(service *Service) *IPCServer {
	return NewIPCServerWithIO(service, os.Stdin, os.Stdout)
}

// NewIPCServerWithIO creates a server on the given streams.
func NewIPCServerWithIO(service *Service, r io.Reader, w io.Writer) *IPCServer {
	bw := bufio.NewWriter(w)
	return &IPCServer{
		service: service,
		reader:  bufio.NewReader(r),
		writer:  bw,
		enc:     msgpack.NewEncoder(bw),
	}
}

// Start announces readiness and serves requests until the input ends or ctx is done.
// A request that cannot be decoded ends the session since the stream can't be resynced.
//
// Decoding runs on its own goroutine so a cancelled ctx returns at once even while the
// input blocks. That goroutine exits when the input next yields or ends.
func (s *IPCServer) Start(ctx context.Context) error {
	log.Debug("Starting IPC server.")
	if err := s.send(StatusMessage{Status: "ready"}); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	requests := s.decode(done)

	for {
		select {
		case <-ctx.Done():
			log.Debug("IPC server stopping.")
			return nil
		case in := <-requests:
			if in.err != nil {
				if errors.Is(in.err, io.EOF) {
					return nil
				}
				log.Errorf("Decoding request: %v", in.err)
				_ = s.send(SearchError{Error: "invalid msgpack request", Code: http.StatusBadRequest})
				return in.err
			}
			if err := s.handleRequest(ctx, in.req); err != nil {
				return err
			}
		}
	}
}

type decoded struct {
	req SearchRequest
	err error
}

// decode reads requests in order until the first error, which is delivered last.
func (s *IPCServer) decode(done <-chan struct{}) <-chan decoded {
	out := make(chan decoded)
	go func() {
		dec := msgpack.NewDecoder(s.reader)
		for {
			var in decoded
			in.err = dec.Decode(&in.req)
			select {
			case out <- in:
			case <-done:
				return
			}
			if in.err != nil {
				return
			}
		}
	}()
	return out
}

func (s *IPCServer) handleRequest(ctx context.Context, req SearchRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	start := time.Now()
	words, err := s.service.Search(ctx, req.Mode, req.Pattern, req.Absent)
	if err != nil {
		log.Debugf("Request %s rejected: %v", req.ID, err)
		return s.send(SearchError{ID: req.ID, Error: err.Error(), Code: statusOf(err)})
	}
	if req.Limit > 0 && len(words) > req.Limit {
		words = words[:req.Limit]
	}

	return s.send(SearchResponse{
		ID:        req.ID,
		Words:     words,
		Count:     len(words),
		TimeTaken: time.Since(start).Microseconds(),
	})
}

// send encodes one message and flushes it so the client sees it immediately.
func (s *IPCServer) send(msg any) error {
	if err := s.enc.Encode(msg); err != nil {
		log.Errorf("Encoding response: %v", err)
		return err
	}
	return s.writer.Flush()
}
