// Package mcp connects the chat client to an external tool-provider process
// speaking the Model Context Protocol over stdio.
//
// The [Connector] owns the process lifecycle: spawn, initialize handshake,
// tool listing, invocation, and teardown. Invocations are serialized on the
// single stdio channel; the connector never interleaves concurrent requests.
//
//	connector, err := mcp.Connect(ctx, "./weather-server", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer connector.Disconnect()
//
//	tools, err := connector.ListTools(ctx)
package mcp

import (
	"context"
	"errors"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	ai "github.com/swingAnt/mcpchat"
)

// Connector manages the connection to one external MCP tool backend.
// At most one backend connection is live per Connector.
type Connector struct {
	target string
	client *client.Client

	mu     sync.Mutex
	closed bool
}

// Connect spawns the tool backend identified by target (a path to an
// executable) and performs the MCP initialize handshake over stdio.
// It returns a [mcpchat.BackendUnreachableError] if the process cannot be
// spawned or the handshake fails.
func Connect(ctx context.Context, target string, env []string, args ...string) (*Connector, error) {
	c, err := client.NewStdioMCPClient(target, env, args...)
	if err != nil {
		return nil, &ai.BackendUnreachableError{Target: target, Err: err}
	}

	if err := c.Start(ctx); err != nil {
		c.Close()
		return nil, &ai.BackendUnreachableError{Target: target, Err: err}
	}

	_, err = c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "mcpchat",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, &ai.BackendUnreachableError{Target: target, Err: err}
	}

	return &Connector{target: target, client: c}, nil
}

// Target returns the launch target this connector was created with.
func (c *Connector) Target() string { return c.target }

// ListTools requests the backend's tool catalog and returns it converted to
// the chat client's tool type, schemas preserved as declared. It returns a
// [mcpchat.BackendProtocolError] if the backend response is malformed.
func (c *Connector) ListTools(ctx context.Context) ([]ai.Tool, error) {
	result, err := c.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, &ai.BackendProtocolError{Op: "list tools", Err: err}
	}
	return FromServerTools(result.Tools), nil
}

// Invoke sends a tool invocation to the backend and blocks until it returns.
//
// A backend-reported tool failure comes back as a result with IsError set,
// not as a Go error, so the caller can decide how to represent it in the
// transcript. Invoke returns a [mcpchat.MalformedToolArgumentsError] if the
// call's arguments are not valid JSON, a [mcpchat.BackendUnreachableError]
// if the connection has been closed, and a [mcpchat.ToolExecutionError] if
// the exchange itself fails.
func (c *Connector) Invoke(ctx context.Context, call ai.ToolCall) (ai.ToolResult, error) {
	req, err := ToCallToolRequest(call)
	if err != nil {
		return ai.ToolResult{}, err
	}

	// One channel, one request at a time.
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ai.ToolResult{}, &ai.BackendUnreachableError{
			Target: c.target,
			Err:    errors.New("connection closed"),
		}
	}

	result, err := c.client.CallTool(ctx, req)
	if err != nil {
		return ai.ToolResult{}, &ai.ToolExecutionError{Name: call.Name, Err: err}
	}

	return FromCallToolResult(call.ID, result), nil
}

// Disconnect releases the stdio channel and the backend subprocess.
// It is idempotent: disconnecting an already-closed connector is a no-op.
func (c *Connector) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.client.Close()
}
