// Package server implements the MCP (Model Context Protocol) server for LSB
// steganography tools.
//
// This package exposes the steg codec and its image analysis helpers as MCP
// tools over a JSON-RPC 2.0 stdio transport.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// A line that is not valid JSON gets a -32700 Parse error response.
//
// # Available Tools
//
// Image Information:
//   - image_load: Dimensions, format, color mode, file size and capacity
//   - steg_capacity: Payload bytes the image can hide
//   - steg_validate_carrier: Check a file is a usable lossless carrier
//
// Embedding:
//   - steg_encode: Hide a text or base64 payload and write a new image
//   - steg_decode: Recover a hidden payload, or report that none is present
//
// Analysis:
//   - steg_inspect_pixels: Samples, LSBs and stream positions of pixels
//   - image_bit_plane: Render one bit plane as PNG
//   - steg_compare: Measure what an embedding changed
//
// # Image Caching
//
// Loaded images are cached by path for the lifetime of the process. An encode
// evicts its output path so a later decode reads the new file.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000. The message names the failure kind ("Capacity exceeded",
// "Unreadable image", "Write failed" or "Tool execution failed") and data
// carries the Go error string. Finding no hidden message is a normal result
// with found=false, not an error.
//
// # Usage
//
//	cfg, err := config.FromEnv("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := server.NewWithConfig(cfg).Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
