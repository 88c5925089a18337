package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fyrsmithlabs/orion-go/pkg/orion"
)

// outputJSON pretty-prints v to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult writes a result's text content to stdout. JSON text is
// pretty-printed; anything else is printed as-is.
func printResult(res *orion.ToolResult) error {
	switch v := res.Value().(type) {
	case nil:
		return nil
	case string:
		fmt.Println(v)
		return nil
	default:
		return outputJSON(v)
	}
}

// saveImages writes a result's image blocks into dir, named after the tool
// that produced them. Returns the written paths.
func saveImages(res *orion.ToolResult, dir string) ([]string, error) {
	if len(res.Images) == 0 {
		return nil, nil
	}

	paths := make([]string, 0, len(res.Images))
	for i, img := range res.Images {
		name := res.Tool + img.Ext()
		if len(res.Images) > 1 {
			name = fmt.Sprintf("%s-%d%s", res.Tool, i+1, img.Ext())
		}
		path := filepath.Join(dir, name)
		if err := img.Save(path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// announceImages saves images to dir and tells the user where they went.
// Progress goes to stderr so stdout stays parseable.
func announceImages(res *orion.ToolResult, dir string) error {
	paths, err := saveImages(res, dir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintf(os.Stderr, "[orionctl] saved %s\n", p)
	}
	return nil
}
