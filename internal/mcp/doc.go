// Package mcp implements the MCP server exposing the Grinfi CRM as a set of
// callable tools.  The package has two transports in front of one tool
// registry: a stdio binding for a single long-lived local client, and an
// HTTP binding that multiplexes concurrent client sessions behind a shared
// secret.
package mcp
