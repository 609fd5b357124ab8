// Package server owns the TCP side of the marketplace protocol: accepting
// connections, framing the byte stream into newline-terminated JSON
// messages, and writing back one response line per request. Each connection
// gets its own goroutine and read buffer; all of them share the single
// store through the router.
package server

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync"

	"github.com/trademart/backend/internal/protocol"
	"github.com/trademart/backend/internal/router"
)

type Server struct {
	router       *router.Router
	maxLineBytes int

	listener net.Listener
	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	wg       sync.WaitGroup
}

func New(r *router.Router, maxLineBytes int) *Server {
	return &Server{
		router:       r,
		maxLineBytes: maxLineBytes,
		conns:        make(map[net.Conn]struct{}),
	}
}

// Listen binds the TCP listener. A failure here is fatal to startup.
func (s *Server) Listen(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = listener
	log.Printf("[SERVER] Listening on %s", listener.Addr())
	return nil
}

// Addr returns the bound listener address. Valid after Listen.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve accepts connections until the listener is closed by Stop.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Printf("[SERVER] Accept error: %v", err)
			continue
		}

		s.register(conn)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(conn)
		}()
	}
}

// Stop closes the listener and every live connection, then waits for the
// per-connection workers to drain. No request in flight is replied to after
// its connection is gone.
func (s *Server) Stop() {
	if s.listener != nil {
		s.listener.Close()
	}
	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Server) register(conn net.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
	log.Printf("[SERVER] Client connected: %s", conn.RemoteAddr())
}

func (s *Server) unregister(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	log.Printf("[SERVER] Client disconnected: %s", conn.RemoteAddr())
}

// serveConn reads the connection line by line. A line is a complete message
// once its line feed arrives; partial lines wait for more bytes. Lines that
// do not decode to a keyed JSON object, and lines longer than the configured
// cap, are dropped without a reply; the connection stays open either way.
// Recognized requests always get exactly one response line, in processing
// order.
func (s *Server) serveConn(conn net.Conn) {
	defer func() {
		conn.Close()
		s.unregister(conn)
	}()

	reader := bufio.NewReaderSize(conn, 64*1024)

	for {
		line, err := s.readLine(reader, conn)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				log.Printf("[SERVER] Read error from %s: %v", conn.RemoteAddr(), err)
			}
			return
		}
		if len(line) == 0 {
			continue
		}

		env, err := protocol.DecodeRequest(line)
		if err != nil {
			log.Printf("[SERVER] Dropping malformed line from %s: %v", conn.RemoteAddr(), err)
			continue
		}

		resp := s.router.Handle(env)
		data, err := protocol.EncodeResponse(resp)
		if err != nil {
			log.Printf("[SERVER] Encode error for %s request: %v", env.Type, err)
			continue
		}

		if _, err := conn.Write(append(data, '\n')); err != nil {
			log.Printf("[SERVER] Write error to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
}

// readLine returns the next newline-terminated line without its line feed.
// A line that grows past maxLineBytes is consumed to its line feed and
// discarded, returning an empty line so the caller moves on; pipelined
// requests behind it are untouched.
func (s *Server) readLine(reader *bufio.Reader, conn net.Conn) ([]byte, error) {
	var line []byte
	for {
		chunk, err := reader.ReadSlice('\n')
		line = append(line, chunk...)
		switch {
		case err == nil:
			line = bytes.TrimSuffix(line, []byte("\n"))
			if len(line) > s.maxLineBytes {
				log.Printf("[SERVER] Dropping oversized line from %s (over %d bytes)", conn.RemoteAddr(), s.maxLineBytes)
				return nil, nil
			}
			return line, nil
		case errors.Is(err, bufio.ErrBufferFull):
			if len(line) > s.maxLineBytes {
				if err := discardLine(reader); err != nil {
					return nil, err
				}
				log.Printf("[SERVER] Dropping oversized line from %s (over %d bytes)", conn.RemoteAddr(), s.maxLineBytes)
				return nil, nil
			}
		default:
			return nil, err
		}
	}
}

// discardLine drains the reader through the next line feed.
func discardLine(reader *bufio.Reader) error {
	for {
		_, err := reader.ReadSlice('\n')
		if err == nil {
			return nil
		}
		if !errors.Is(err, bufio.ErrBufferFull) {
			return err
		}
	}
}
