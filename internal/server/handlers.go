package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/skintone-mcp/internal/imaging"
	"github.com/ironsheep/skintone-mcp/internal/session"
	"github.com/ironsheep/skintone-mcp/internal/skintone"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "skin_tone_analyze").
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.WithError(err).WithField("tool", params.Name).Warn("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
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

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Analysis
	case "skin_tone_analyze":
		return s.handleAnalyze(args)
	case "skin_tone_adjust":
		return s.handleAdjust(args)

	// Palettes
	case "skin_tone_palette":
		return s.handlePalette(args)
	case "skin_tone_categories":
		return s.handleCategories(args)

	// Inspection
	case "skin_tone_mask":
		return s.handleMask(args)
	case "skin_tone_sample":
		return s.handleSample(args)
	case "skin_tone_session":
		return s.handleSession(args)

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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// === Analysis Handlers ===

type analyzeArgs struct {
	Path        string `json:"path"`
	ImageBase64 string `json:"image_base64"`
	SessionID   string `json:"session_id"`
}

type detectionResult struct {
	skintone.Detection
	Note string `json:"note,omitempty"`
}

type analyzeResult struct {
	SessionID string            `json:"session_id"`
	Source    string            `json:"source"`
	Image     imaging.ImageInfo `json:"image"`
	Detection detectionResult   `json:"detection"`
	Palette   []string          `json:"palette"`
}

func (s *Server) handleAnalyze(args json.RawMessage) (interface{}, error) {
	var a analyzeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var (
		img    image.Image
		info   *imaging.ImageInfo
		source string
		err    error
	)
	switch {
	case a.Path != "":
		img, err = s.cache.Load(a.Path)
		if err != nil {
			return nil, err
		}
		info, err = imaging.LoadImageInfo(s.cache, a.Path)
		source = a.Path
	case a.ImageBase64 != "":
		img, info, err = imaging.DecodeBase64(a.ImageBase64, s.cfg.Image.MaxDimension)
		source = "upload"
	default:
		return nil, errors.New("either path or image_base64 is required")
	}
	if err != nil {
		return nil, err
	}

	sess := s.sessions.Analyze(a.SessionID, source, img, *info)
	s.log.WithField("session", sess.ID).
		WithField("category", sess.Detect.Category).
		WithField("pass", sess.Detect.Pass).
		Info("analyzed image")

	return &analyzeResult{
		SessionID: sess.ID,
		Source:    sess.Source,
		Image:     sess.Info,
		Detection: detectionResult{Detection: sess.Detect, Note: errString(sess.Detect.Err)},
		Palette:   sess.Palette,
	}, nil
}

type adjustArgs struct {
	SessionID string `json:"session_id"`
	Target    string `json:"target"`
}

type adjustResult struct {
	SessionID  string                `json:"session_id"`
	Adjustment skintone.Adjustment   `json:"adjustment"`
	Note       string                `json:"note,omitempty"`
	Palette    []string              `json:"palette"`
	Image      *imaging.EncodedImage `json:"image"`
}

func (s *Server) handleAdjust(args json.RawMessage) (interface{}, error) {
	var a adjustArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	sess, adj, err := s.sessions.Adjust(a.SessionID, a.Target)
	if err != nil {
		return nil, err
	}
	encoded, err := imaging.EncodePNG(adj.Image)
	if err != nil {
		return nil, err
	}

	return &adjustResult{
		SessionID:  sess.ID,
		Adjustment: adj,
		Note:       errString(adj.Err),
		Palette:    sess.Palette,
		Image:      encoded,
	}, nil
}

// === Palette Handlers ===

type paletteArgs struct {
	Category string `json:"category"`
	Swatches bool   `json:"swatches"`
	Render   bool   `json:"render"`
}

type paletteResult struct {
	Category   string                `json:"category"`
	Recognized bool                  `json:"recognized"`
	Colors     []string              `json:"colors"`
	Swatches   []skintone.Swatch     `json:"swatches,omitempty"`
	Image      *imaging.EncodedImage `json:"image,omitempty"`
}

func (s *Server) handlePalette(args json.RawMessage) (interface{}, error) {
	var a paletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	_, recognized := skintone.ParseCategory(a.Category)
	result := &paletteResult{
		Category:   a.Category,
		Recognized: recognized,
		Colors:     skintone.ColorRecommendations(a.Category),
	}

	if a.Swatches {
		swatches, err := skintone.Swatches(a.Category)
		if err != nil {
			return nil, err
		}
		result.Swatches = swatches
	}
	if a.Render {
		strip, err := skintone.RenderPalette(a.Category, s.cfg.Palette.SwatchSize)
		if err != nil {
			return nil, err
		}
		if result.Image, err = imaging.EncodePNG(strip); err != nil {
			return nil, err
		}
	}
	return result, nil
}

type categoryInfo struct {
	Name         skintone.Category `json:"name"`
	MinLightness float64           `json:"min_lightness"`
	skintone.Target
}

func (s *Server) handleCategories(args json.RawMessage) (interface{}, error) {
	cats := skintone.Categories()
	out := make([]categoryInfo, 0, len(cats))
	for _, c := range cats {
		t, _ := skintone.TargetFor(string(c))
		out = append(out, categoryInfo{Name: c, MinLightness: c.MinLightness(), Target: t})
	}
	return map[string]interface{}{
		"categories": out,
		"default":    skintone.DefaultCategory,
	}, nil
}

// === Inspection Handlers ===

type maskArgs struct {
	SessionID string   `json:"session_id"`
	Band      string   `json:"band"`
	Opacity   *float64 `json:"opacity"`
}

type maskResult struct {
	SessionID  string                `json:"session_id"`
	Band       string                `json:"band"`
	SkinPixels int                   `json:"skin_pixels"`
	Image      *imaging.EncodedImage `json:"image"`
}

func (s *Server) handleMask(args json.RawMessage) (interface{}, error) {
	var a maskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Band == "" {
		a.Band = skintone.LenientBand.Name
	}
	band, ok := skintone.BandByName(a.Band)
	if !ok {
		return nil, fmt.Errorf("unknown band %q (use strict or lenient)", a.Band)
	}
	opacity := s.cfg.Image.OverlayOpacity
	if a.Opacity != nil {
		opacity = *a.Opacity
	}

	sess, err := s.sessions.Get(a.SessionID)
	if err != nil {
		return nil, err
	}
	overlay, count, err := skintone.MaskOverlay(sess.Original, band, opacity)
	if err != nil {
		return nil, err
	}
	encoded, err := imaging.EncodePNG(overlay)
	if err != nil {
		return nil, err
	}

	return &maskResult{
		SessionID:  sess.ID,
		Band:       band.Name,
		SkinPixels: count,
		Image:      encoded,
	}, nil
}

type sampleArgs struct {
	SessionID string `json:"session_id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

type sampleResult struct {
	*imaging.ColorResult
	InStrictBand  bool `json:"in_strict_band"`
	InLenientBand bool `json:"in_lenient_band"`
}

func (s *Server) handleSample(args json.RawMessage) (interface{}, error) {
	var a sampleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.sessions.Get(a.SessionID)
	if err != nil {
		return nil, err
	}

	// Coordinates are relative to the image's top-left corner.
	b := sess.Original.Bounds()
	c, err := imaging.SampleColor(sess.Original, b.Min.X+a.X, b.Min.Y+a.Y)
	if err != nil {
		return nil, err
	}

	l, la, lb := skintone.LabColor(c.RGB.R, c.RGB.G, c.RGB.B)
	return &sampleResult{
		ColorResult:   c,
		InStrictBand:  skintone.StrictBand.Contains(l, la, lb),
		InLenientBand: skintone.LenientBand.Contains(l, la, lb),
	}, nil
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
	Action    string `json:"action"`
}

func (s *Server) handleSession(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	switch a.Action {
	case "", "get":
		return s.sessions.Get(a.SessionID)
	case "reset":
		return s.sessions.Reset(a.SessionID)
	case "close":
		if !s.sessions.Delete(a.SessionID) {
			return nil, session.ErrNotFound
		}
		return map[string]interface{}{"session_id": a.SessionID, "closed": true}, nil
	default:
		return nil, fmt.Errorf("unknown action %q (use get, reset or close)", a.Action)
	}
}
