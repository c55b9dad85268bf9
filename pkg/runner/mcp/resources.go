package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	statsURI     = "planner://stats"
	dayTemplate  = "planner://days/{date}"
	mimeTypeJSON = "application/json"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerStatsResource(srv, svc)
	registerDayTemplate(srv, svc)
}

func registerStatsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		statsURI,
		"Planner Stats",
		mcp.WithResourceDescription("Item counts by kind and to-do completion across every day."),
		mcp.WithMIMEType(mimeTypeJSON),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		summary, err := svc.Stats("", "")
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, summary)
	})
}

func registerDayTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		dayTemplate,
		"Day Items",
		mcp.WithTemplateDescription("Ordered items planned for one date (YYYY-MM-DD, today, tomorrow or yesterday)."),
		mcp.WithTemplateMIMEType(mimeTypeJSON),
	)

	srv.AddResourceTemplate(template, readDay(svc))
}

func readDay(svc *Service) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		date := templateArg(request.Params.Arguments, "date")
		if date == "" {
			return nil, fmt.Errorf("date is required")
		}

		day, err := svc.Day(date)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"date":  day.Date,
			"count": len(day.Items),
			"items": day.Items,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	}
}

// templateArg reads a matched URI template variable. The server hands them
// over as string slices.
func templateArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: mimeTypeJSON,
			Text:     string(data),
		},
	}, nil
}
