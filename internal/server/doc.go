// Package server implements the MCP (Model Context Protocol) server for skin
// tone analysis.
//
// This package provides a JSON-RPC 2.0 server that exposes the skin tone
// pipeline (detection, palette lookup and adjustment) to MCP-compatible
// clients.
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
// # Available Tools
//
// Analysis:
//   - skin_tone_analyze: Detect the skin tone of a file or upload and open a session
//   - skin_tone_adjust: Shift the session image toward a target category
//
// Palettes:
//   - skin_tone_palette: Recommended clothing colours for a category
//   - skin_tone_categories: Categories with cutoffs and adjustment targets
//
// Inspection:
//   - skin_tone_mask: Overlay of the pixels treated as skin
//   - skin_tone_sample: Colour and band membership of one pixel
//   - skin_tone_session: Get, reset or close a session
//
// # Sessions
//
// skin_tone_analyze returns a session ID that the other image tools take.
// Sessions live in memory, are bounded by session.max_sessions and expire
// session.ttl after their last update.
//
// # Error Handling
//
// The pipeline never fails: images it cannot read, images with too little
// skin and unknown categories all resolve to Medium, and the reason is
// reported in a "note" field. Tool errors (unknown session, missing
// arguments, undecodable uploads) are returned as JSON-RPC error responses
// with code -32000 and the Go error string in data.
//
// # Logging
//
// Stdout carries the protocol, so all logging goes through the injected
// logrus logger, which writes to stderr.
package server
