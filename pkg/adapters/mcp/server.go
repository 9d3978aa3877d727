package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/typedclass/internal/logging"
	httpadapter "github.com/aretw0/typedclass/pkg/adapters/http"
	"github.com/aretw0/typedclass/pkg/class"
	"github.com/aretw0/typedclass/pkg/domain"
	"github.com/aretw0/typedclass/pkg/manifest"
	"github.com/aretw0/typedclass/pkg/observability"
	"github.com/aretw0/typedclass/pkg/openapi"
)

// StructuresURI is the resource holding the OpenAPI document of every structure.
const StructuresURI = "typedclass://structures"

// ConstructResponse is the structured result of the construct tool.
type ConstructResponse struct {
	Structure string         `json:"structure" jsonschema_description:"The structure the document was checked against"`
	Valid     bool           `json:"valid" jsonschema_description:"Whether the document satisfies every field constraint"`
	Values    map[string]any `json:"values,omitempty" jsonschema_description:"Field values after defaults were applied"`
	Repr      string         `json:"repr,omitempty" jsonschema_description:"Textual representation of the instance"`
	Error     string         `json:"error,omitempty" jsonschema_description:"Validation error message"`
	Kind      string         `json:"kind,omitempty" jsonschema_description:"Validation error kind"`
}

type nameArgs struct {
	Name string `json:"name"`
}

type constructArgs struct {
	Name     string `json:"name"`
	Document string `json:"document"`
}

// Server exposes a structure registry as an MCP server.
type Server struct {
	registry  *class.Registry
	logger    *slog.Logger
	version   string
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(reg *class.Registry, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		registry:  reg,
		logger:    logger,
		version:   version,
		mcpServer: server.NewMCPServer("typedclass-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: list_structures
	s.mcpServer.AddTool(mcp.NewTool("list_structures",
		mcp.WithDescription("List every declared structure with its fields and configuration."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		views := []httpadapter.StructureView{}
		for _, name := range s.registry.Names() {
			if md, ok := s.registry.Lookup(name); ok {
				views = append(views, httpadapter.Describe(md))
			}
		}
		return mcp.NewToolResultJSON(views)
	})

	// TOOL: describe_structure
	describeTool := mcp.NewTool("describe_structure",
		mcp.WithDescription("Describe the fields and configuration of one structure."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Structure name")),
		mcp.WithOutputSchema[httpadapter.StructureView](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribe))

	// TOOL: get_schema
	s.mcpServer.AddTool(mcp.NewTool("get_schema",
		mcp.WithDescription("Get the OpenAPI schema of one structure."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Structure name")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		md, ok := s.registry.Lookup(name)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("%v: %s", domain.ErrUnknownStructure, name)), nil
		}
		jsonBytes, err := json.Marshal(openapi.Schema(md))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode schema: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: construct
	constructTool := mcp.NewTool("construct",
		mcp.WithDescription("Validate a YAML or JSON document against a structure and build an instance."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Structure name")),
		mcp.WithString("document", mcp.Required(), mcp.Description("YAML or JSON mapping of field names to values")),
		mcp.WithOutputSchema[ConstructResponse](),
	)
	s.mcpServer.AddTool(constructTool, mcp.NewStructuredToolHandler(s.handleConstruct))
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args nameArgs) (httpadapter.StructureView, error) {
	md, ok := s.registry.Lookup(args.Name)
	if !ok {
		return httpadapter.StructureView{}, fmt.Errorf("%w: %s", domain.ErrUnknownStructure, args.Name)
	}
	return httpadapter.Describe(md), nil
}

// handleConstruct reports validation failures in the response body.
// Only unreadable documents and unknown structures fail the call.
func (s *Server) handleConstruct(ctx context.Context, request mcp.CallToolRequest, args constructArgs) (ConstructResponse, error) {
	doc, err := manifest.DecodeDocument([]byte(args.Document))
	if err != nil {
		s.logger.Warn("MCP Construct: Invalid document", "structure", args.Name, "error", err)
		return ConstructResponse{}, fmt.Errorf("decode document: %w", err)
	}

	inst, err := s.registry.Construct(args.Name, doc)
	if errors.Is(err, domain.ErrUnknownStructure) {
		return ConstructResponse{}, err
	}
	if err != nil {
		return ConstructResponse{
			Structure: args.Name,
			Error:     err.Error(),
			Kind:      observability.Result(err),
		}, nil
	}
	return ConstructResponse{
		Structure: args.Name,
		Valid:     true,
		Values:    inst.Values(),
		Repr:      inst.String(),
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: typedclass://structures
	s.mcpServer.AddResource(mcp.NewResource(StructuresURI, "Structure Schemas",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		doc := openapi.Document(s.registry, "typedclass structures", s.version)
		jsonBytes, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to encode structures: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      StructuresURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
