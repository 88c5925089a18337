package orion

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/codes"
)

// ToolInfo describes one tool exposed by the server.
type ToolInfo struct {
	Name        string
	Description string
}

// ResourceInfo describes one resource exposed by the server.
type ResourceInfo struct {
	Name        string
	URI         string
	Description string
	MIMEType    string
}

// ListTools returns the tools the server currently exposes. Like CallTool,
// it opens and closes its own session.
func (c *Client) ListTools(ctx context.Context) ([]ToolInfo, error) {
	ctx, span := tracer.Start(ctx, "Client.ListTools")
	defer span.End()

	session, err := c.connect(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer c.closeSession("list_tools", session)

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("listing tools: %w", err)
	}

	tools := make([]ToolInfo, 0, len(res.Tools))
	for _, t := range res.Tools {
		tools = append(tools, ToolInfo{
			Name:        t.Name,
			Description: t.Description,
		})
	}
	return tools, nil
}

// ListResources returns the resources the server currently exposes. Servers
// without resource support return an error, which is propagated unchanged.
func (c *Client) ListResources(ctx context.Context) ([]ResourceInfo, error) {
	ctx, span := tracer.Start(ctx, "Client.ListResources")
	defer span.End()

	session, err := c.connect(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer c.closeSession("list_resources", session)

	res, err := session.ListResources(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("listing resources: %w", err)
	}

	resources := make([]ResourceInfo, 0, len(res.Resources))
	for _, r := range res.Resources {
		resources = append(resources, ResourceInfo{
			Name:        r.Name,
			URI:         r.URI,
			Description: r.Description,
			MIMEType:    r.MIMEType,
		})
	}
	return resources, nil
}
