// Package mcptools exposes the job board views as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ldexchange/jobboard/internal/model"
	"ldexchange/jobboard/internal/store"
	"ldexchange/jobboard/internal/view"
)

// defaultLimit caps how many jobs search_jobs returns when no limit is given.
const defaultLimit = 25

// Tools serves MCP tool calls from a view service.
type Tools struct {
	svc *view.Service
}

// New returns Tools backed by svc.
func New(svc *view.Service) *Tools {
	return &Tools{svc: svc}
}

// Register adds every tool to s.
func (t *Tools) Register(s *server.MCPServer) {
	search := mcp.NewTool("search_jobs",
		mcp.WithDescription("Search stored L&D job postings with the same filters as the job board"),
	)
	search.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: filterProperties(map[string]interface{}{
			"limit": map[string]interface{}{"type": "integer", "description": "Max jobs to return (default: 25)"},
		}),
	}
	s.AddTool(search, t.SearchJobs)

	stats := mcp.NewTool("job_stats",
		mcp.WithDescription("Aggregate counts (level, category, top companies, specialties) for a filtered job set"),
	)
	stats.InputSchema = mcp.ToolInputSchema{
		Type:       "object",
		Properties: filterProperties(nil),
	}
	s.AddTool(stats, t.JobStats)

	locations := mcp.NewTool("list_locations",
		mcp.WithDescription("List the distinct locations of stored jobs"),
	)
	s.AddTool(locations, t.ListLocations)
}

func filterProperties(extra map[string]interface{}) map[string]interface{} {
	stringList := func(desc string) map[string]interface{} {
		return map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": desc,
		}
	}
	props := map[string]interface{}{
		"levels":      stringList(`Levels to include: "Management+" or "Individual Contributor"`),
		"categories":  stringList("Categories to include, e.g. \"Instructional Design\", \"Enablement\""),
		"specialties": stringList("Specialties to include, e.g. \"Talent Development\""),
		"locations":   stringList("Locations; remote/nationwide postings always match"),
		"search":      map[string]interface{}{"type": "string", "description": "Substring of title or company"},
		"min_score":   map[string]interface{}{"type": "integer", "description": "Minimum match score (0-100)"},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// SearchJobs handles the search_jobs tool.
func (t *Tools) SearchJobs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok && request.Params.Arguments != nil {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	f, err := parseFilters(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := defaultLimit
	if v, ok := args["limit"].(float64); ok && v > 0 {
		limit = int(v)
	}

	v, err := t.svc.View(ctx, f)
	if err != nil {
		return toolError("search jobs", err), nil
	}
	jobs := v.Jobs
	if len(jobs) > limit {
		jobs = jobs[:limit]
	}
	type jobOut struct {
		Title    string  `json:"title"`
		Company  string  `json:"company"`
		Location string  `json:"location"`
		Level    string  `json:"level"`
		Category string  `json:"category"`
		Salary   *string `json:"salary,omitempty"`
		URL      string  `json:"url"`
	}
	out := struct {
		Total int      `json:"total"`
		Jobs  []jobOut `json:"jobs"`
	}{Total: len(v.Jobs), Jobs: make([]jobOut, 0, len(jobs))}
	for _, j := range jobs {
		out.Jobs = append(out.Jobs, jobOut{
			Title: j.Title, Company: j.Company, Location: j.Location,
			Level: string(j.Level), Category: string(j.Category), Salary: j.Salary, URL: j.URL,
		})
	}
	return jsonResult(out)
}

// JobStats handles the job_stats tool.
func (t *Tools) JobStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok && request.Params.Arguments != nil {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	f, err := parseFilters(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	v, err := t.svc.View(ctx, f)
	if err != nil {
		return toolError("job stats", err), nil
	}
	return jsonResult(v.Stats)
}

// ListLocations handles the list_locations tool.
func (t *Tools) ListLocations(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	locs, err := t.svc.Locations(ctx)
	if err != nil {
		return toolError("list locations", err), nil
	}
	return mcp.NewToolResultText(strings.Join(locs, "\n")), nil
}

func parseFilters(args map[string]interface{}) (view.Filters, error) {
	var f view.Filters
	for _, s := range stringList(args["levels"]) {
		l, err := model.ParseLevel(s)
		if err != nil {
			return f, err
		}
		f.Levels = append(f.Levels, l)
	}
	for _, s := range stringList(args["categories"]) {
		c, err := model.ParseCategory(s)
		if err != nil {
			return f, err
		}
		f.Categories = append(f.Categories, c)
	}
	f.Specialties = stringList(args["specialties"])
	f.Locations = stringList(args["locations"])
	if v, ok := args["search"].(string); ok {
		f.Search = strings.TrimSpace(v)
	}
	if v, ok := args["min_score"].(float64); ok {
		if v < 0 || v > 100 {
			return f, fmt.Errorf("min_score must be between 0 and 100, got %v", v)
		}
		f.MinScore = int(v)
	}
	return f, nil
}

// stringList accepts a JSON array of strings or a single string.
func stringList(v interface{}) []string {
	var raw []string
	switch x := v.(type) {
	case string:
		raw = []string{x}
	case []interface{}:
		for _, item := range x {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	case []string:
		raw = x
	}
	var out []string
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func toolError(op string, err error) *mcp.CallToolResult {
	if errors.Is(err, store.ErrUnavailable) {
		return mcp.NewToolResultError("job store unavailable: set DATABASE_URL or SQLITE_PATH")
	}
	return mcp.NewToolResultError(fmt.Sprintf("Failed to %s: %v", op, err))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
