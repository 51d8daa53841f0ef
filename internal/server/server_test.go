package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/ironsheep/steg-tools-mcp/internal/config"
	"github.com/ironsheep/steg-tools-mcp/internal/imaging"
	"github.com/ironsheep/steg-tools-mcp/internal/steg"
)

func TestNew(t *testing.T) {
	s := New()
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cache == nil {
		t.Fatal("New() did not initialize cache")
	}
}

func TestHandleRequest_EchoesID(t *testing.T) {
	s := New()

	tests := []struct {
		name string
		line string
		want interface{}
	}{
		{"string id", `{"jsonrpc":"2.0","id":"req-7","method":"ping"}`, "req-7"},
		{"number id", `{"jsonrpc":"2.0","id":42,"method":"ping"}`, float64(42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.line), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}
			resp := s.handleRequest(&req)
			if resp.ID != tt.want {
				t.Errorf("ID: got %v (%T), want %v (%T)", resp.ID, resp.ID, tt.want, tt.want)
			}
		})
	}
}

func TestToolErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"capacity", fmt.Errorf("payload rejected: %w", &steg.CapacityExceededError{NeededBits: 24, AvailableBits: 16, MaxBytes: 2}), "Capacity exceeded"},
		{"unreadable", &imaging.ImageError{Op: "open", Path: "x.png", Kind: imaging.ErrUnreadableImage, Err: os.ErrNotExist}, "Unreadable image"},
		{"write", &imaging.ImageError{Op: "write", Path: "x.jpg", Kind: imaging.ErrWriteFailed, Err: errors.New("no encoder")}, "Write failed"},
		{"other", errors.New("boom"), "Tool execution failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toolErrorMessage(tt.err); got != tt.want {
				t.Errorf("toolErrorMessage: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorResponse_Wire(t *testing.T) {
	s := New()
	resp := s.errorResponse(3, -32000, "Capacity exceeded", "needs 24 bits")

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var wire map[string]interface{}
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if _, ok := wire["result"]; ok {
		t.Error("error response should omit result")
	}
	errObj, ok := wire["error"].(map[string]interface{})
	if !ok {
		t.Fatal("error should be an object")
	}
	if errObj["code"] != float64(-32000) || errObj["message"] != "Capacity exceeded" || errObj["data"] != "needs 24 bits" {
		t.Errorf("error object: got %v", errObj)
	}
}

func TestHandleRequest_NotificationsInitialized(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		Method:  "notifications/initialized",
	}

	resp := s.handleRequest(req)

	// Notifications don't get responses
	if resp != nil {
		t.Error("notifications/initialized should return nil response")
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "nonexistent/method",
	}

	resp := s.handleRequest(req)

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error == nil {
		t.Fatal("Expected error for unknown method")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("Error code: got %d, want -32601", resp.Error.Code)
	}
}

func TestHandleInitialize(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      "init-1",
	}

	resp := s.handleInitialize(req)

	if resp.ID != "init-1" {
		t.Errorf("ID: got %v, want init-1", resp.ID)
	}
	if resp.JSONRPC != "2.0" {
		t.Errorf("JSONRPC: got %s, want 2.0", resp.JSONRPC)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}

	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	if !ok {
		t.Fatal("serverInfo should be a map")
	}

	if serverInfo["name"] != "steg-tools-mcp" {
		t.Errorf("serverInfo.name: got %v", serverInfo["name"])
	}
	if serverInfo["version"] != Version {
		t.Errorf("serverInfo.version: got %v", serverInfo["version"])
	}
}

func TestNewWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.OutputPrefix = "hidden_"

	s := NewWithConfig(cfg)
	if s.cfg != cfg {
		t.Error("NewWithConfig did not keep the config")
	}

	s = NewWithConfig(nil)
	if s.cfg == nil || s.cfg.OutputPrefix != "encoded_" {
		t.Error("NewWithConfig(nil) should use defaults")
	}
}

func TestServe(t *testing.T) {
	s := New()
	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	}, "\n")

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	dec := json.NewDecoder(&out)
	var responses []MCPResponse
	for dec.More() {
		var resp MCPResponse
		if err := dec.Decode(&resp); err != nil {
			t.Fatalf("invalid response: %v", err)
		}
		responses = append(responses, resp)
	}

	if len(responses) != 3 {
		t.Fatalf("got %d responses, want 3", len(responses))
	}
	if responses[0].ID != float64(1) || responses[0].Error != nil {
		t.Errorf("initialize response: %+v", responses[0])
	}
	if responses[1].Error == nil || responses[1].Error.Code != -32700 {
		t.Errorf("parse error response: %+v", responses[1])
	}
	if responses[2].ID != float64(2) || responses[2].Error != nil {
		t.Errorf("ping response: %+v", responses[2])
	}
}
