package orion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolResult holds the parsed content of a single tool call.
//
// Orion tools reply with one or more content blocks. Text blocks usually
// carry JSON; report tools invoked with OutputImage or OutputBoth add image
// blocks. Blocks are kept in arrival order.
type ToolResult struct {
	// Tool is the name of the tool that produced this result.
	Tool string

	// SessionID identifies the MCP session the call ran on.
	SessionID string

	// Texts holds the raw text blocks.
	Texts []string

	// Images holds the image blocks with decoded bytes.
	Images []Image
}

// parseResult converts SDK content blocks into a ToolResult. Content types
// Orion never produces (audio, resource links) are skipped.
func parseResult(tool, sessionID string, res *mcp.CallToolResult) *ToolResult {
	result := &ToolResult{Tool: tool, SessionID: sessionID}
	for _, content := range res.Content {
		switch c := content.(type) {
		case *mcp.TextContent:
			result.Texts = append(result.Texts, c.Text)
		case *mcp.ImageContent:
			result.Images = append(result.Images, Image{Data: c.Data, MIMEType: c.MIMEType})
		}
	}
	return result
}

// textContent joins the text blocks of raw content, for error messages.
func textContent(content []mcp.Content) string {
	var parts []string
	for _, c := range content {
		if tc, ok := c.(*mcp.TextContent); ok && tc.Text != "" {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Text returns the first text block, or "" when the result has none.
func (r *ToolResult) Text() string {
	if len(r.Texts) == 0 {
		return ""
	}
	return r.Texts[0]
}

// Decode unmarshals the first text block as JSON into v.
func (r *ToolResult) Decode(v any) error {
	if len(r.Texts) == 0 {
		return fmt.Errorf("tool %q returned no text content", r.Tool)
	}
	if err := json.Unmarshal([]byte(r.Texts[0]), v); err != nil {
		return fmt.Errorf("decoding %q result: %w", r.Tool, err)
	}
	return nil
}

// Map decodes the first text block into a generic map.
func (r *ToolResult) Map() (map[string]any, error) {
	var m map[string]any
	if err := r.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// Value returns the first text block decoded as JSON, or the raw string
// when the block is not valid JSON. Returns nil when the result carries no
// text at all.
func (r *ToolResult) Value() any {
	if len(r.Texts) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(r.Texts[0]), &v); err != nil {
		return r.Texts[0]
	}
	return v
}

// Image returns the first image block, or nil when the result has none.
func (r *ToolResult) Image() *Image {
	if len(r.Images) == 0 {
		return nil
	}
	return &r.Images[0]
}

// Image is a rendered chart returned by a report tool.
type Image struct {
	// Data holds the decoded image bytes.
	Data []byte

	// MIMEType declares the image format, e.g. "image/jpeg".
	MIMEType string
}

// Ext returns a file extension for the image's MIME type, including the
// leading dot. Unknown types map to ".bin".
func (i Image) Ext() string {
	switch i.MIMEType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/svg+xml":
		return ".svg"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

// Save writes the image to path, creating parent directories as needed.
func (i Image) Save(path string) error {
	if len(i.Data) == 0 {
		return fmt.Errorf("image has no data")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, i.Data, 0644); err != nil {
		return fmt.Errorf("writing image %q: %w", path, err)
	}
	return nil
}

// ToolError is returned when the server reports a tool-level failure, as
// opposed to a transport or protocol error.
type ToolError struct {
	// Tool is the tool that failed.
	Tool string

	// Message is the server's failure text.
	Message string
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tool %q failed", e.Tool)
	}
	return fmt.Sprintf("tool %q failed: %s", e.Tool, e.Message)
}
