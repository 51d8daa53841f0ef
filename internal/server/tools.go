package server

import "github.com/ironsheep/steg-tools-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, color mode, file size, and LSB embedding capacity.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "steg_capacity",
			Description: "Compute how many payload bytes an image can hide: (width*height*3 - 32) / 8.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "steg_validate_carrier",
			Description: "Check that a file exists, has a supported lossless extension, and decodes as that format. Run this before encoding.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Embedding
		{
			Name:        "steg_encode",
			Description: "Hide a message in the least significant bits of a PNG's RGB channels and save the result as a new lossless image. The source file is not modified.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"message": map[string]interface{}{
						"type":        "string",
						"description": "Text to hide. Normalised to Unicode NFC and stored as UTF-8.",
					},
					"message_base64": map[string]interface{}{
						"type":        "string",
						"description": "Binary payload as standard base64. Use instead of message.",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the stego image (.png or .bmp). Default: encoded_<name> next to the source.",
					},
					"compress": map[string]interface{}{
						"type":        "boolean",
						"description": "Compress the payload with zstd before hiding it. The decoder must pass decompress=true.",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "steg_decode",
			Description: "Recover a message hidden by steg_encode. Returns found=false when the image carries no message.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"decompress": map[string]interface{}{
						"type":        "boolean",
						"description": "Decompress the recovered payload with zstd.",
					},
				},
				"required": []string{"path"},
			},
		},

		// Analysis
		{
			Name:        "steg_inspect_pixels",
			Description: "Show the RGB samples, their least significant bits, and their position in the embedding stream for one or more pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string", "description": "Optional label for this point"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Array of points to inspect",
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "image_bit_plane",
			Description: "Render one bit plane of an image as a base64 PNG. Bit 0 of an embedded image shows the hidden payload as noise at the top rows.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"bit": map[string]interface{}{
						"type":        "integer",
						"description": "Bit position, 0 (least significant) to 7. Default 0",
						"default":     0,
					},
					"channel": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"r", "g", "b", "all"},
						"description": "Channel to render. Default all",
						"default":     "all",
					},
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Nearest-neighbour magnification. The scaled image may not exceed 8192 px per side. Default 1",
						"default":     1,
						"minimum":     1,
						"maximum":     imaging.MaxBitPlaneSide,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "steg_compare",
			Description: "Compare a cover image with its stego version: changed samples, maximum channel delta, whether only LSBs differ, PSNR, and CIEDE2000 perceptual distance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"cover_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the original image",
					},
					"stego_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image with the hidden message",
					},
				},
				"required": []string{"cover_path", "stego_path"},
			},
		},
	}
}

// handleToolsList responds with all tool definitions
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
