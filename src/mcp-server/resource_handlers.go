// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// configResource serves the effective configuration as JSON.
func configResource(deps ServerDependencies) ResourceHandler {
	return func(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.MarshalIndent(deps.Config, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config template: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "config://template",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

// versionResource serves server metadata and the tool list.
func versionResource(deps ServerDependencies) ResourceHandler {
	return func(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tools := createTools(&handlers{deps: deps})
		names := make([]string, 0, len(tools))
		for _, t := range tools {
			names = append(names, t.Tool.Name)
		}

		info := map[string]any{
			"name":    serverName,
			"version": deps.Version,
			"capabilities": map[string]any{
				"tools":     names,
				"resources": []string{"config://template", "info://version"},
			},
			"supportedFormats": []string{"pem", "der", "base64", "pkcs7"},
		}

		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal version info: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "info://version",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
