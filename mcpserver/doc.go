// Package mcpserver exposes the playground over the Model Context Protocol.
//
// The server registers one MCP tool per enabled catalog definition (lint,
// analyze and run) with the catalog's input schemas and typed outputs.
// Snippet faults come back as tool results with IsError set. Protocol-level
// errors are reserved for malformed requests.
package mcpserver
