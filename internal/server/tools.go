package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var categoryEnum = []string{"Fair", "Light", "Medium", "Olive", "Tan", "Deep", "Dark"}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID returned by skin_tone_analyze",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Analysis
		{
			Name:        "skin_tone_analyze",
			Description: "Detect the skin tone category of an image by averaging the CIELAB lightness of skin-coloured pixels. Returns a session ID, the detection record and the recommended clothing palette. Images with too little skin fall back to Medium.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"image_base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded image bytes, optionally as a data URL. Used when path is empty.",
					},
					"session_id": map[string]interface{}{
						"type":        "string",
						"description": "Optional existing session to replace the image of",
					},
				},
			},
		},
		{
			Name:        "skin_tone_adjust",
			Description: "Shift the session image's skin pixels toward a target category and return the result as base64-encoded PNG together with the palette for that category. Unknown targets move toward Medium.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"target": map[string]interface{}{
						"type":        "string",
						"description": "Target category",
						"enum":        categoryEnum,
					},
				},
				"required": []string{"session_id", "target"},
			},
		},

		// Palettes
		{
			Name:        "skin_tone_palette",
			Description: "Get the seven recommended clothing colours for a skin tone category. Unknown categories return the Medium palette.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"category": map[string]interface{}{
						"type":        "string",
						"description": "Skin tone category",
						"enum":        categoryEnum,
					},
					"swatches": map[string]interface{}{
						"type":        "boolean",
						"description": "Include RGB, HSL and Lab values for each colour. Default false",
						"default":     false,
					},
					"render": map[string]interface{}{
						"type":        "boolean",
						"description": "Include a PNG strip of the swatches. Default false",
						"default":     false,
					},
				},
				"required": []string{"category"},
			},
		},
		{
			Name:        "skin_tone_categories",
			Description: "List the skin tone categories from lightest to darkest with their lightness cutoffs and adjustment targets.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Inspection
		{
			Name:        "skin_tone_mask",
			Description: "Highlight the pixels the detector treats as skin and return the overlay as base64-encoded PNG with the pixel count.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"band": map[string]interface{}{
						"type":        "string",
						"description": "Threshold band. Default lenient",
						"enum":        []string{"strict", "lenient"},
						"default":     "lenient",
					},
					"opacity": map[string]interface{}{
						"type":        "number",
						"description": "Highlight opacity between 0 and 1. Defaults to the configured overlay opacity",
					},
				},
				"required": []string{"session_id"},
			},
		},
		{
			Name:        "skin_tone_sample",
			Description: "Sample one pixel of the session's original image and report its colour in hex, RGB, HSL and Lab, plus whether it falls inside the strict and lenient skin bands.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
				},
				"required": []string{"session_id", "x", "y"},
			},
		},
		{
			Name:        "skin_tone_session",
			Description: "Get, reset or close a session. Reset discards the adjusted image and restores the detected category.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"action": map[string]interface{}{
						"type":        "string",
						"description": "Action to perform. Default get",
						"enum":        []string{"get", "reset", "close"},
						"default":     "get",
					},
				},
				"required": []string{"session_id"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
