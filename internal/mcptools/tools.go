package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/vibeprompt/internal/catalog"
	"github.com/mark3labs/vibeprompt/internal/export"
	"github.com/mark3labs/vibeprompt/internal/gateway"
	"github.com/mark3labs/vibeprompt/internal/refimage"
)

func (s *Server) registerTools() {
	modeArg := mcp.WithString("mode", mcp.Required(),
		mcp.Enum(catalog.Names()...),
		mcp.Description("Design mode"),
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list-modes",
			mcp.WithDescription("List the design modes with their item limits"),
		),
		s.handleListModes,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("propose-styles",
			mcp.WithDescription("Propose exactly 3 distinct visual styles for an idea"),
			modeArg,
			mcp.WithString("idea",
				mcp.Description("Free-text idea; required unless image_path is given"),
			),
			mcp.WithString("image_path",
				mcp.Description("Path to a reference image on the server's filesystem"),
			),
			mcp.WithArray("avoid",
				mcp.Description("Style names from a previous batch; the new batch must differ"),
				mcp.Items(map[string]any{"type": "string"}),
			),
		),
		s.handleProposeStyles,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("build-final-prompt",
			mcp.WithDescription("Build the final prompt and the implementation prompt for a chosen style"),
			modeArg,
			mcp.WithString("idea",
				mcp.Description("The idea the styles were proposed for; empty when only an image was given"),
			),
			mcp.WithString("style", mcp.Required(),
				mcp.Description(`Chosen style as "Name (description)" or a free-text vibe`),
			),
		),
		s.handleBuildFinalPrompt,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("export-prompt",
			mcp.WithDescription("Save a final prompt and implementation prompt as Markdown"),
			modeArg,
			mcp.WithString("final_prompt", mcp.Required()),
			mcp.WithString("implementation_prompt"),
			mcp.WithString("style"),
			mcp.WithString("idea"),
			mcp.WithString("dir", mcp.Description("Output directory (defaults to the configured export_dir)")),
		),
		s.handleExportPrompt,
	)
}

type modeInfo struct {
	Mode     string `json:"mode"`
	Label    string `json:"label"`
	Summary  string `json:"summary"`
	MinItems int    `json:"min_items"`
	MaxItems int    `json:"max_items"`
}

func (s *Server) handleListModes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var out []modeInfo
	for _, e := range catalog.All() {
		out = append(out, modeInfo{
			Mode:     string(e.Mode),
			Label:    e.Label,
			Summary:  e.Summary,
			MinItems: e.MinItems,
			MaxItems: e.MaxItems,
		})
	}
	return jsonResult(out)
}

type proposeResult struct {
	Batch  int                   `json:"batch"`
	Styles []gateway.StyleOption `json:"styles"`
}

func (s *Server) handleProposeStyles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	mode, errResult := modeArgument(args)
	if errResult != nil {
		return errResult, nil
	}

	idea := stringArg(args, "idea")
	var img *refimage.Image
	if path := stringArg(args, "image_path"); path != "" {
		var err error
		img, err = refimage.Load(path, s.opts.MaxImageBytes)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("image_path: %v", err)), nil
		}
	}
	if idea == "" && img == nil {
		return mcp.NewToolResultError("either 'idea' or 'image_path' is required"), nil
	}

	avoid, err := stringSliceArg(args, "avoid")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	batch := int(s.batch.Add(1))
	styles, err := s.gw.ProposeStyles(ctx, gateway.ProposeRequest{
		Idea:   idea,
		Mode:   mode,
		Image:  img,
		Reroll: len(avoid) > 0,
		Avoid:  avoid,
		Batch:  batch,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(proposeResult{Batch: batch, Styles: styles})
}

func (s *Server) handleBuildFinalPrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	mode, errResult := modeArgument(args)
	if errResult != nil {
		return errResult, nil
	}
	idea := stringArg(args, "idea")
	style := stringArg(args, "style")
	if style == "" {
		return mcp.NewToolResultError("missing 'style' parameter"), nil
	}

	prompts, err := s.gw.BuildFinalPrompt(ctx, gateway.FinalRequest{Idea: idea, Mode: mode, Style: style})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(prompts)
}

func (s *Server) handleExportPrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	mode, errResult := modeArgument(args)
	if errResult != nil {
		return errResult, nil
	}
	final := stringArg(args, "final_prompt")
	if final == "" {
		return mcp.NewToolResultError("missing 'final_prompt' parameter"), nil
	}
	dir := stringArg(args, "dir")
	if dir == "" {
		dir = s.opts.ExportDir
	}
	if dir == "" {
		return mcp.NewToolResultError("no 'dir' given and no export_dir configured"), nil
	}

	path, err := export.Save(dir, export.Document{
		Mode:           string(mode),
		Style:          stringArg(args, "style"),
		Idea:           stringArg(args, "idea"),
		Final:          final,
		Implementation: stringArg(args, "implementation_prompt"),
		Created:        time.Now(),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Saved to %s", path)), nil
}

func modeArgument(args map[string]any) (catalog.Mode, *mcp.CallToolResult) {
	raw := stringArg(args, "mode")
	if raw == "" {
		return "", mcp.NewToolResultError("missing 'mode' parameter")
	}
	mode, err := catalog.Parse(raw)
	if err != nil {
		return "", mcp.NewToolResultError(err.Error())
	}
	return mode, nil
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return strings.TrimSpace(v)
}

// stringSliceArg reads an optional array of strings (mcp-go decodes JSON
// arrays as []any).
func stringSliceArg(args map[string]any, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("'%s' is not an array", key)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("'%s' item %d is not a string", key, i)
		}
		if str = strings.TrimSpace(str); str != "" {
			out = append(out, str)
		}
	}
	return out, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
