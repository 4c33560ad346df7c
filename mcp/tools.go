package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/webfetch"
	"github.com/mark3labs/mcp-go/mcp"
)

func fetchTool() mcp.Tool {
	return mcp.NewTool("fetch",
		mcp.WithDescription("Fetches URLs from the internet and extracts their contents as markdown. This is the highly recommended way to fetch pages."),
		mcp.WithArray("urls",
			mcp.Required(),
			mcp.Description("A list of URLs to fetch."),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Searches the web for the query and returns titles, URLs, and summaries of the top results."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The natural language query to search for."),
		),
		mcp.WithArray("include_domains",
			mcp.Description("If specified, results will only come from these domains, e.g. [\"example.com\"]."),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

// handleFetch returns one text content block per requested URL, in request
// order. Per-URL failures become that slot's text; they never fail the call.
func (s *Server) handleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	urls, err := stringSlice(req.GetArguments(), "urls")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(urls) == 0 {
		return mcp.NewToolResultError("urls must be a non-empty array of strings"), nil
	}

	results := s.fetcher.FetchAll(ctx, urls)

	out := &mcp.CallToolResult{}
	for _, r := range results {
		if r.Err != nil {
			out.Content = append(out.Content, mcp.NewTextContent(
				fmt.Sprintf("Error fetching %s: %s", r.URL, webfetch.ErrorMessage(r.Err))))
			continue
		}
		out.Content = append(out.Content, mcp.NewTextContent(
			fmt.Sprintf("<%s>\n\n%s", r.URL, r.Markdown)))
	}
	return out, nil
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	query, _ := args["query"].(string)
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	includeDomains, err := stringSlice(args, "include_domains")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results, err := s.searcher.Search(ctx, query, includeDomains)
	if err != nil {
		return mcp.NewToolResultError(webfetch.ErrorMessage(err)), nil
	}

	data, err := json.Marshal(results)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// stringSlice reads an optional []string argument. A missing key yields nil;
// a present key with non-string members is an error.
func stringSlice(args map[string]any, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array of strings", key)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be an array of strings", key)
		}
		out = append(out, s)
	}
	return out, nil
}
