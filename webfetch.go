// Package webfetch provides reliable retrieval of web pages as Markdown,
// falling back from plain HTTP to a headless browser for pages that need
// JavaScript to render, plus a thin web search client. The fetch and search
// capabilities are exposed over the MCP tool protocol.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, htmltomarkdown/).
package webfetch
