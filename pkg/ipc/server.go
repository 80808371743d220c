// Package ipc implements the bar's unix-socket control channel: a line per
// message in, a JSON status line back per message.
package ipc

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"time"
)

// Request is one inbound message. Exactly one string must be sent on Reply;
// the connection handler blocks until it arrives.
type Request struct {
	Message string
	Reply   chan string
}

// Server listens on a bar's socket and hands each decoded message to the
// event loop through Requests.
type Server struct {
	socketPath string
	listener   net.Listener
	requests   chan Request
	done       chan struct{}
	log        *log.Logger
}

// New builds a server for the socket at socketPath.
func New(socketPath string, lg *log.Logger) *Server {
	if lg == nil {
		lg = log.New(io.Discard, "", 0)
	}
	return &Server{
		socketPath: socketPath,
		requests:   make(chan Request),
		done:       make(chan struct{}),
		log:        lg,
	}
}

// Path returns the socket path the server (will) listen on.
func (s *Server) Path() string {
	return s.socketPath
}

// Requests is the stream of inbound messages.
func (s *Server) Requests() <-chan Request {
	return s.requests
}

// Start claims the socket and begins accepting connections. A live socket
// means another bar owns the name; a dead one is removed and taken over.
func (s *Server) Start() error {
	if err := s.claimSocket(); err != nil {
		return err
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on socket: %w", err)
	}
	s.listener = listener

	go s.acceptLoop()

	return nil
}

// claimSocket probes an existing socket file: refusing connections marks it
// stale.
func (s *Server) claimSocket() error {
	if _, err := os.Stat(s.socketPath); err != nil {
		return nil
	}
	conn, err := net.DialTimeout("unix", s.socketPath, time.Second)
	if err == nil {
		conn.Close()
		return fmt.Errorf("socket %s is in use by a running bar", s.socketPath)
	}
	os.Remove(s.socketPath)
	return nil
}

// Stop shuts the server down and deletes the socket file.
func (s *Server) Stop() {
	close(s.done)
	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				s.log.Printf("ipc accept: %v", err)
				continue
			}
		}
		go s.handleConn(conn)
	}
}

// handleConn serves one client: each line is a message, answered in order
// with one response line.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 4*1024), 64*1024)

	for scanner.Scan() {
		message := scanner.Text()
		if message == "" {
			continue
		}

		req := Request{Message: message, Reply: make(chan string, 1)}
		select {
		case s.requests <- req:
		case <-s.done:
			return
		}

		var response string
		select {
		case response = <-req.Reply:
		case <-s.done:
			return
		}

		conn.SetWriteDeadline(time.Now().Add(time.Second))
		if _, err := conn.Write(append([]byte(response), '\n')); err != nil {
			s.log.Printf("ipc write: %v", err)
			return
		}
	}
}
