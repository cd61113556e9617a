// Command weatherserver is a reference MCP tool backend that exposes
// weather tools over stdio, backed by the api.weather.gov service.
//
// It is the end-to-end counterpart of the mcpchat client:
//
//	mcpchat ./weatherserver
//
// Tools:
//
//	get_forecast(latitude, longitude) - forecast for US coordinates
//	get_alerts(state)                 - active alerts for a US state
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	s := server.NewMCPServer(
		"weather",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	nws := newNWSClient()

	forecastTool := mcp.NewTool("get_forecast",
		mcp.WithDescription("Get the weather forecast for a location in the United States"),
		mcp.WithNumber("latitude", mcp.Required(), mcp.Description("Latitude of the location")),
		mcp.WithNumber("longitude", mcp.Required(), mcp.Description("Longitude of the location")),
	)
	s.AddTool(forecastTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		latitude, err := req.RequireFloat("latitude")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		longitude, err := req.RequireFloat("longitude")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		text, err := nws.Forecast(ctx, latitude, longitude)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("forecast lookup failed: %v", err)), nil
		}
		return mcp.NewToolResultText(text), nil
	})

	alertsTool := mcp.NewTool("get_alerts",
		mcp.WithDescription("Get active weather alerts for a US state"),
		mcp.WithString("state", mcp.Required(), mcp.Description("Two-letter US state code, e.g. NY")),
	)
	s.AddTool(alertsTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		state, err := req.RequireString("state")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		text, err := nws.Alerts(ctx, state)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("alert lookup failed: %v", err)), nil
		}
		return mcp.NewToolResultText(text), nil
	})

	if err := server.ServeStdio(s); err != nil {
		log.Fatal(err)
	}
}
