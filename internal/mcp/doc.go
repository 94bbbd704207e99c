// Package mcp implements a Model Context Protocol (MCP) server for banctl
// using the mcp-go library.
//
// The server exposes the administrative ban operations as tools so AI
// assistants can resolve, inspect, and clear ban entries through a
// standardized protocol, plus a resource listing the valid violation
// namespaces. It communicates via stdin/stdout using JSON-RPC 2.0 as
// specified by the MCP standard.
//
// Domain failures (unknown user, malformed email, store errors) surface as
// tool error results rather than protocol errors, so the client sees them
// as tool output it can act on.
package mcp
