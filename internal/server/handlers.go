package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/ironsheep/steg-tools-mcp/internal/imaging"
	"github.com/ironsheep/steg-tools-mcp/internal/payload"
	"github.com/ironsheep/steg-tools-mcp/internal/steg"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "steg_encode", "steg_decode").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// A decode that finds no message is not an error.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if s.cfg.Debug() {
		log.Printf("tool %s finished in %v (err=%v)", params.Name, time.Since(start), err)
	}
	if err != nil {
		return s.errorResponse(req.ID, -32000, toolErrorMessage(err), err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// toolErrorMessage names the error kind so clients can tell a full carrier
// from a bad file without parsing the details.
func toolErrorMessage(err error) string {
	switch {
	case errors.Is(err, steg.ErrCapacityExceeded):
		return "Capacity exceeded"
	case errors.Is(err, imaging.ErrUnreadableImage):
		return "Unreadable image"
	case errors.Is(err, imaging.ErrWriteFailed):
		return "Write failed"
	default:
		return "Tool execution failed"
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "steg_capacity":
		return s.handleStegCapacity(args)
	case "steg_validate_carrier":
		return s.handleStegValidateCarrier(args)

	// Embedding
	case "steg_encode":
		return s.handleStegEncode(args)
	case "steg_decode":
		return s.handleStegDecode(args)

	// Analysis
	case "steg_inspect_pixels":
		return s.handleStegInspectPixels(args)
	case "image_bit_plane":
		return s.handleImageBitPlane(args)
	case "steg_compare":
		return s.handleStegCompare(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// loadCarrier loads path through the cache and normalises it to RGB.
func (s *Server) loadCarrier(path string) (*imaging.Carrier, error) {
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	return imaging.CarrierFromImage(img), nil
}

// checkCarrier applies the configured carrier validity check.
func (s *Server) checkCarrier(path string) error {
	check := imaging.IsValidCarrier(path, s.cfg.SupportedFormats)
	if !check.Valid {
		return fmt.Errorf("invalid carrier %s: %s", path, check.Reason)
	}
	return nil
}

// === Image Information Handlers ===

type pathArgs struct {
	Path string `json:"path"`
}

type imageLoadResult struct {
	*imaging.ImageInfo
	Capacity steg.CapacityInfo `json:"capacity"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	return &imageLoadResult{
		ImageInfo: info,
		Capacity:  steg.Capacity(info.Width, info.Height),
	}, nil
}

type capacityResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	steg.CapacityInfo
}

func (s *Server) handleStegCapacity(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &capacityResult{
		Width:        b.Dx(),
		Height:       b.Dy(),
		CapacityInfo: steg.Capacity(b.Dx(), b.Dy()),
	}, nil
}

func (s *Server) handleStegValidateCarrier(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	check := imaging.IsValidCarrier(a.Path, s.cfg.SupportedFormats)
	return &check, nil
}

// === Embedding Handlers ===

type stegEncodeArgs struct {
	Path          string  `json:"path"`
	Message       *string `json:"message"`
	MessageBase64 *string `json:"message_base64"`
	OutputPath    string  `json:"output_path"`
	Compress      *bool   `json:"compress"`
}

type stegEncodeResult struct {
	*steg.EncodeResult
	Compressed   bool `json:"compressed"`
	MessageBytes int  `json:"message_bytes"`
}

func (s *Server) handleStegEncode(args json.RawMessage) (interface{}, error) {
	var a stegEncodeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var data []byte
	switch {
	case a.Message != nil && a.MessageBase64 != nil:
		return nil, errors.New("give either message or message_base64, not both")
	case a.Message != nil:
		if limit := s.cfg.MaxMessageLength; limit > 0 && utf8.RuneCountInString(*a.Message) > limit {
			return nil, fmt.Errorf("message has %d characters, limit is %d", utf8.RuneCountInString(*a.Message), limit)
		}
		data = payload.FromText(*a.Message)
	case a.MessageBase64 != nil:
		b, err := payload.FromBase64(*a.MessageBase64)
		if err != nil {
			return nil, err
		}
		data = b
	default:
		return nil, errors.New("message or message_base64 is required")
	}
	messageBytes := len(data)

	if err := s.checkCarrier(a.Path); err != nil {
		return nil, err
	}

	compress := s.cfg.CompressByDefault
	if a.Compress != nil {
		compress = *a.Compress
	}
	if compress {
		c, err := payload.Compress(data)
		if err != nil {
			return nil, err
		}
		data = c
	}

	out := a.OutputPath
	if out == "" {
		out = imaging.DefaultOutputPath(a.Path, s.cfg.OutputPrefix)
	}
	if sameFile(out, a.Path) {
		return nil, fmt.Errorf("output path %s would overwrite the source image", out)
	}

	carrier, err := s.loadCarrier(a.Path)
	if err != nil {
		return nil, err
	}
	if err := steg.CheckFits(carrier, len(data)); err != nil {
		return nil, err
	}

	res, err := steg.EncodeCarrier(carrier, data, out)
	if err != nil {
		return nil, err
	}
	s.cache.Evict(out)

	return &stegEncodeResult{
		EncodeResult: res,
		Compressed:   compress,
		MessageBytes: messageBytes,
	}, nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

type stegDecodeArgs struct {
	Path       string `json:"path"`
	Decompress bool   `json:"decompress"`
}

type stegDecodeResult struct {
	Found      bool   `json:"found"`
	LengthBits uint32 `json:"length_bits,omitempty"`
	*payload.Decoded
}

func (s *Server) handleStegDecode(args json.RawMessage) (interface{}, error) {
	var a stegDecodeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.checkCarrier(a.Path); err != nil {
		return nil, err
	}

	carrier, err := s.loadCarrier(a.Path)
	if err != nil {
		return nil, err
	}

	res := steg.DecodeCarrier(carrier)
	if !res.Found {
		return &stegDecodeResult{Found: false}, nil
	}

	data := res.Payload
	if a.Decompress {
		if data, err = payload.Decompress(data); err != nil {
			return nil, err
		}
	}

	d := payload.Describe(data)
	return &stegDecodeResult{
		Found:      true,
		LengthBits: res.LengthBits,
		Decoded:    &d,
	}, nil
}

// === Analysis Handlers ===

type stegInspectPixelsArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleStegInspectPixels(args json.RawMessage) (interface{}, error) {
	var a stegInspectPixelsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	carrier, err := s.loadCarrier(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.InspectPixels(carrier, points)
}

type imageBitPlaneArgs struct {
	Path    string `json:"path"`
	Bit     int    `json:"bit"`
	Channel string `json:"channel"`
	Scale   int    `json:"scale"`
}

func (s *Server) handleImageBitPlane(args json.RawMessage) (interface{}, error) {
	var a imageBitPlaneArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1
	}
	carrier, err := s.loadCarrier(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.BitPlane(carrier, a.Bit, a.Channel, a.Scale)
}

type stegCompareArgs struct {
	CoverPath string `json:"cover_path"`
	StegoPath string `json:"stego_path"`
}

func (s *Server) handleStegCompare(args json.RawMessage) (interface{}, error) {
	var a stegCompareArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cover, err := s.loadCarrier(a.CoverPath)
	if err != nil {
		return nil, err
	}
	stego, err := s.loadCarrier(a.StegoPath)
	if err != nil {
		return nil, err
	}
	return imaging.CompareImages(cover, stego)
}
