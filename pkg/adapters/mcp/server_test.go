package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/aretw0/typedclass/pkg/adapters/http"
	"github.com/aretw0/typedclass/pkg/class"
	"github.com/aretw0/typedclass/pkg/constraint"
	"github.com/aretw0/typedclass/pkg/observability"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reg := class.NewRegistry()
	_, err := reg.Register("User", class.Define("User").
		Field("id", constraint.ExactOf[int]()).
		Field("name", constraint.ExactOf[string]()).
		Default("email", constraint.Optional(constraint.ExactOf[string]()), nil))
	require.NoError(t, err)
	return NewServer(reg, "1.2.3", nil)
}

func call(t *testing.T, s *Server, tool string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	st := s.MCPServer().GetTool(tool)
	require.NotNil(t, st, "tool %s not registered", tool)

	req := mcp.CallToolRequest{}
	req.Params.Name = tool
	req.Params.Arguments = args
	res, err := st.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return tc.Text
}

func TestTools_Registered(t *testing.T) {
	s := newTestServer(t)
	tools := s.MCPServer().ListTools()
	for _, name := range []string{"list_structures", "describe_structure", "get_schema", "construct"} {
		assert.Contains(t, tools, name)
	}
}

func TestListStructures(t *testing.T) {
	s := newTestServer(t)
	res := call(t, s, "list_structures", nil)
	assert.False(t, res.IsError)

	var views []httpadapter.StructureView
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "User", views[0].Name)
	assert.Len(t, views[0].Fields, 3)
}

func TestDescribeStructure(t *testing.T) {
	s := newTestServer(t)

	res := call(t, s, "describe_structure", map[string]any{"name": "User"})
	assert.False(t, res.IsError)
	view, ok := res.StructuredContent.(httpadapter.StructureView)
	require.True(t, ok)
	assert.Equal(t, "User", view.Name)

	res = call(t, s, "describe_structure", map[string]any{"name": "Ghost"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "Ghost")
}

func TestGetSchema(t *testing.T) {
	s := newTestServer(t)

	res := call(t, s, "get_schema", map[string]any{"name": "User"})
	assert.False(t, res.IsError)
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &schema))
	assert.Equal(t, "User", schema["title"])
	assert.ElementsMatch(t, []any{"id", "name"}, schema["required"])

	res = call(t, s, "get_schema", map[string]any{})
	assert.True(t, res.IsError)

	res = call(t, s, "get_schema", map[string]any{"name": "Ghost"})
	assert.True(t, res.IsError)
}

func TestConstruct(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name      string
		structure string
		document  string
		wantValid bool
		wantKind  string
		wantRepr  string
	}{
		{"yaml", "User", "id: 1\nname: a\n", true, "", `User(id=1, name="a", email=nil)`},
		{"json", "User", `{"id": 2, "name": "b", "email": "b@x.io"}`, true, "", `User(id=2, name="b", email="b@x.io")`},
		{"type mismatch", "User", `{"id": "1", "name": "a"}`, false, observability.ResultTypeMismatch, ""},
		{"missing", "User", `{"id": 1}`, false, observability.ResultMissingFields, ""},
		{"unexpected", "User", `{"id": 1, "name": "a", "x": 1}`, false, observability.ResultUnexpectedFields, ""},
		{"positional", "User", `[1, "a"]`, false, observability.ResultInvalidShape, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := call(t, s, "construct", map[string]any{"name": tt.structure, "document": tt.document})
			require.False(t, res.IsError, text(t, res))

			got, ok := res.StructuredContent.(ConstructResponse)
			require.True(t, ok)
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantRepr, got.Repr)
			if !tt.wantValid {
				assert.NotEmpty(t, got.Error)
			}
		})
	}
}

func TestConstruct_CallErrors(t *testing.T) {
	s := newTestServer(t)

	res := call(t, s, "construct", map[string]any{"name": "Ghost", "document": "{}"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "Ghost")

	res = call(t, s, "construct", map[string]any{"name": "User", "document": `{"id": [1`})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "decode document")
}
