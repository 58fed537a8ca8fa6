package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/image-map-mcp/internal/config"
	"github.com/ironsheep/image-map-mcp/internal/imaging"
	"github.com/ironsheep/image-map-mcp/internal/ocr"
)

// ServerName is reported in the initialize response.
const ServerName = "image-map-mcp"

// ProtocolVersion is the MCP revision this server speaks.
const ProtocolVersion = "2024-11-05"

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// Server handles MCP protocol communication
type Server struct {
	cfg     config.Config
	logger  *log.Logger
	cache   *imaging.ImageCache
	version string

	in  io.Reader
	out io.Writer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. It must not write to the protocol output.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *Server) {
		s.in = in
		s.out = out
	}
}

// WithVersion sets the version reported to clients.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance
func New(cfg config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		logger:  log.Default(),
		cache:   imaging.NewImageCache(),
		version: "dev",
		in:      os.Stdin,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads one JSON-RPC message per line and writes one response per
// line. It returns when the input ends or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	info := ocr.GetInfo()
	s.logger.Info("server started",
		"version", s.version,
		"config", s.cfg.Source,
		"ocr", info.Available,
		"tesseract", info.Version)

	lines := make(chan []byte)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(s.in)
		// Increase buffer size for large requests
		buf := make([]byte, 0, 64*1024)
		scanner.Buffer(buf, 4*1024*1024)

		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	encoder := json.NewEncoder(s.out)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("server stopping", "reason", ctx.Err())
			return nil

		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("scanner error: %w", err)
				}
				s.logger.Info("input closed")
				return nil
			}
			if len(line) == 0 {
				continue
			}

			resp := s.handleLine(line)
			if resp == nil {
				continue
			}
			if err := encoder.Encode(resp); err != nil {
				return fmt.Errorf("failed to encode response: %w", err)
			}
		}
	}
}

// handleLine decodes one message and routes it.
func (s *Server) handleLine(line []byte) *MCPResponse {
	var req MCPRequest
	if err := json.Unmarshal(line, &req); err != nil {
		s.logger.Warn("failed to parse request", "err", err)
		return s.errorResponse(nil, codeParseError, "Parse error", err.Error())
	}
	return s.handleRequest(&req)
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	s.logger.Debug("request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return s.errorResponse(req.ID, codeMethodNotFound,
			fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": ProtocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    ServerName,
				"version": s.version,
			},
		},
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
// An empty data string is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}
