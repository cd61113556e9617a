// Package mcpchat provides the shared data model for an interactive chat
// client that bridges a chat-completions API to an MCP tool backend.
//
// The root package defines provider-neutral conversation and tool types.
// Subpackages build on them:
//
//   - provider/openai, provider/anthropic, provider/google: chat API
//     adapters implementing [ChatProvider] over the official SDKs.
//   - mcp: the connector to the external tool-provider process
//     (spawn, handshake, tool listing, invocation, teardown).
//   - tool: the registry of tools advertised by the connected backend.
//   - agent: the orchestrator that drives one query through the
//     model/tool-call/model cycle.
//   - chat: the interactive read-eval-print session.
//
// The cmd/mcpchat binary wires these together; cmd/weatherserver is a
// reference MCP backend exposing weather tools for end-to-end use.
package mcpchat
