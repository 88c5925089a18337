package orion

import "strings"

// OutputFormat selects how report tools shape their result.
type OutputFormat string

const (
	// OutputJSON returns the raw analysis data as a JSON text block.
	OutputJSON OutputFormat = "json"

	// OutputImage returns a rendered chart as an image block.
	OutputImage OutputFormat = "image"

	// OutputBoth returns the JSON data and the rendered chart.
	OutputBoth OutputFormat = "both"
)

// OutputJSONField returns a selector that restricts the JSON output to a
// single top-level field: OutputJSONField("data") yields "json:data".
func OutputJSONField(field string) OutputFormat {
	return OutputFormat("json:" + field)
}

// Valid reports whether the format is one the server accepts.
func (f OutputFormat) Valid() bool {
	switch f {
	case OutputJSON, OutputImage, OutputBoth:
		return true
	}
	field, ok := strings.CutPrefix(string(f), "json:")
	return ok && field != ""
}

// String returns the wire form of the selector.
func (f OutputFormat) String() string {
	return string(f)
}
