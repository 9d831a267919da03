// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// createResources returns the static resources bound to deps.
func createResources(deps ServerDependencies) []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource(
				"config://template",
				"Configuration Template",
				mcp.WithResourceDescription("Effective configuration, usable as a template for a config file"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: configResource(deps),
		},
		{
			Resource: mcp.NewResource(
				"info://version",
				"Version Information",
				mcp.WithResourceDescription("Server name, version and available tools"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: versionResource(deps),
		},
	}
}
