// Package mcp exposes a carousel controller as a Model Context Protocol server,
// so agents can navigate slides and read the current state.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/rotator/pkg/deck"
	"github.com/aretw0/rotator/pkg/domain"
	"github.com/aretw0/rotator/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const stateURI = "rotator://state"
const itemsURI = "rotator://items"

// StateResponse is returned by every tool.
type StateResponse struct {
	State domain.State `json:"state" jsonschema_description:"The carousel state after the call"`
	Item  *deck.Item   `json:"item,omitempty" jsonschema_description:"The active item, when a deck is loaded"`
}

// GotoArgs are the arguments of the goto tool.
type GotoArgs struct {
	Index int `json:"index"`
}

// Server wraps a carousel and exposes it as an MCP Server.
type Server struct {
	carousel  ports.Carousel
	deck      *deck.Deck
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. d may be nil.
func NewServer(c ports.Carousel, d *deck.Deck, version string) *Server {
	s := &Server{
		carousel:  c,
		deck:      d,
		mcpServer: server.NewMCPServer("rotator-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server (e.g. to mount it over SSE).
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("next",
		mcp.WithDescription("Advance the carousel one item, wrapping after the last."),
		mcp.WithOutputSchema[StateResponse](),
	), mcp.NewStructuredToolHandler(s.handleNext))

	s.mcpServer.AddTool(mcp.NewTool("previous",
		mcp.WithDescription("Move the carousel back one item, wrapping before the first."),
		mcp.WithOutputSchema[StateResponse](),
	), mcp.NewStructuredToolHandler(s.handlePrevious))

	s.mcpServer.AddTool(mcp.NewTool("goto",
		mcp.WithDescription("Jump to the item at a 0-based index along the shortest cyclic path."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Target index in [0, count)")),
		mcp.WithOutputSchema[StateResponse](),
	), mcp.NewStructuredToolHandler(s.handleGoto))

	s.mcpServer.AddTool(mcp.NewTool("pause",
		mcp.WithDescription("Stop autoplay. The active item does not change."),
		mcp.WithOutputSchema[StateResponse](),
	), mcp.NewStructuredToolHandler(s.handlePause))

	s.mcpServer.AddTool(mcp.NewTool("resume",
		mcp.WithDescription("Restart autoplay; the next tick comes one full interval later."),
		mcp.WithOutputSchema[StateResponse](),
	), mcp.NewStructuredToolHandler(s.handleResume))

	s.mcpServer.AddTool(mcp.NewTool("get_state",
		mcp.WithDescription("Read the current carousel state and active item."),
		mcp.WithOutputSchema[StateResponse](),
	), mcp.NewStructuredToolHandler(s.handleGetState))
}

func (s *Server) handleNext(ctx context.Context, _ mcp.CallToolRequest, _ map[string]any) (StateResponse, error) {
	return s.respond(s.carousel.Next(ctx)), nil
}

func (s *Server) handlePrevious(ctx context.Context, _ mcp.CallToolRequest, _ map[string]any) (StateResponse, error) {
	return s.respond(s.carousel.Previous(ctx)), nil
}

func (s *Server) handleGoto(ctx context.Context, _ mcp.CallToolRequest, args GotoArgs) (StateResponse, error) {
	st, err := s.carousel.GoTo(ctx, args.Index)
	if err != nil {
		return StateResponse{}, fmt.Errorf("goto failed: %w", err)
	}
	return s.respond(st), nil
}

func (s *Server) handlePause(ctx context.Context, _ mcp.CallToolRequest, _ map[string]any) (StateResponse, error) {
	s.carousel.Pause(ctx)
	return s.respond(s.carousel.State()), nil
}

func (s *Server) handleResume(ctx context.Context, _ mcp.CallToolRequest, _ map[string]any) (StateResponse, error) {
	s.carousel.Resume(ctx)
	return s.respond(s.carousel.State()), nil
}

func (s *Server) handleGetState(_ context.Context, _ mcp.CallToolRequest, _ map[string]any) (StateResponse, error) {
	return s.respond(s.carousel.State()), nil
}

func (s *Server) respond(st domain.State) StateResponse {
	resp := StateResponse{State: st}
	if it, ok := s.deck.At(st.Index); ok {
		resp.Item = &it
	}
	return resp
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(stateURI, "Carousel State",
		mcp.WithResourceDescription("Active index, direction and autoplay flag."),
		mcp.WithMIMEType("application/json"),
	), s.readState)

	s.mcpServer.AddResource(mcp.NewResource(itemsURI, "Carousel Items",
		mcp.WithResourceDescription("Items in display order."),
		mcp.WithMIMEType("application/json"),
	), s.readItems)
}

func (s *Server) readState(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(stateURI, s.respond(s.carousel.State()))
}

func (s *Server) readItems(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	items := []deck.Item{}
	if s.deck != nil {
		items = s.deck.Items
	}
	return jsonResource(itemsURI, items)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
