// Package control implements the named-pipe control server (C10): a
// length/line-delimited JSON request/response channel with exactly one
// outstanding request per connection. Every request is funneled onto the
// controller's unified channel as a model.Command and the server blocks
// on the reply slot before writing the response.
package control

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/Microsoft/go-winio"

	"github.com/jmelosegui/mosaico/internal/model"
)

// PipeName is the fixed control-channel identifier spec.md's §6 names.
const PipeName = `\\.\pipe\mosaico`

type wireRequest struct {
	Command string `json:"command"`
	Action  string `json:"action,omitempty"`
}

type wireResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Server accepts one client connection at a time; each connection reads
// one request line, forwards it as a model.Command, and writes back
// exactly one response line before disconnecting.
type Server struct {
	listener net.Listener
	commands chan<- model.Command

	mu       sync.Mutex
	shutdown bool
}

// Listen opens the named pipe. Detecting an existing daemon is a
// non-blocking dial attempt against PipeName that never reaches here.
func Listen(commands chan<- model.Command) (*Server, error) {
	l, err := winio.ListenPipe(PipeName, nil)
	if err != nil {
		return nil, fmt.Errorf("control: listen %s: %w", PipeName, err)
	}
	return &Server{listener: l, commands: commands}, nil
}

// Serve blocks accepting connections until Stop is called.
func (s *Server) Serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.mu.Lock()
			down := s.shutdown
			s.mu.Unlock()
			if down {
				return
			}
			log.Printf("control: accept: %v", err)
			continue
		}
		s.handle(conn)
	}
}

// Stop closes the listening endpoint; in-flight connections finish on
// their own.
func (s *Server) Stop() {
	s.mu.Lock()
	s.shutdown = true
	s.mu.Unlock()
	s.listener.Close()
}

// handle serves one connection fully before returning — never
// concurrent, so responses are trivially ordered.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	if err != nil {
		return
	}

	var req wireRequest
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		writeResponse(conn, wireResponse{Status: "error", Message: "malformed request"})
		return
	}

	cmd, err := toCommand(req)
	if err != nil {
		writeResponse(conn, wireResponse{Status: "error", Message: err.Error()})
		return
	}

	reply := make(chan model.CommandResult, 1)
	cmd.Reply = reply
	s.commands <- cmd
	result := <-reply

	if result.OK {
		writeResponse(conn, wireResponse{Status: "ok", Message: result.Message})
	} else {
		writeResponse(conn, wireResponse{Status: "error", Message: result.Message})
	}
}

func toCommand(req wireRequest) (model.Command, error) {
	switch req.Command {
	case "stop":
		return model.Command{Kind: model.CmdStop}, nil
	case "status":
		return model.Command{Kind: model.CmdStatus}, nil
	case "action":
		if req.Action == "" {
			return model.Command{}, fmt.Errorf("action command missing \"action\" field")
		}
		return model.Command{Kind: model.CmdAction, Action: req.Action}, nil
	default:
		return model.Command{}, fmt.Errorf("unknown command %q", req.Command)
	}
}

func writeResponse(conn net.Conn, resp wireResponse) {
	data, _ := json.Marshal(resp)
	data = append(data, '\n')
	conn.Write(data)
}

// Probe reports whether the control channel exists by dialing it and
// closing the connection at once — used to detect whether a daemon is
// already running. The dial is a real connection: a running server
// accepts it and drops it when no request line arrives.
func Probe() bool {
	conn, err := winio.DialPipe(PipeName, nil)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
