package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ralt/prepub/internal/checks"
	"github.com/ralt/prepub/internal/config"
	"github.com/ralt/prepub/internal/models"
	"github.com/ralt/prepub/internal/report"
	"github.com/ralt/prepub/internal/verify"
)

// Serve runs the MCP server over stdio until the client disconnects.
func Serve(ctx context.Context, version string) error {
	return NewServer(version).Run(ctx, &mcpsdk.StdioTransport{})
}

// NewServer builds the MCP server: one tool per checklist item, one for the
// whole checklist and one for import verification.
func NewServer(version string) *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "prepub",
		Version: version,
	}, nil)

	for _, c := range checks.All() {
		addCheckTool(server, c)
	}

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "run_checklist",
		Description: "Run the full pre-publishing checklist against a Python project",
	}, runChecklist)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "verify_import",
		Description: "Import the package in a Python subprocess and report the version it declares",
	}, verifyImport)

	return server
}

func addCheckTool(server *mcpsdk.Server, c checks.Check) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "check_" + c.ID(),
		Description: checkDescription(c.ID()),
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, input ToolInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
		rc, out, err := newRunContext(input)
		if err != nil {
			return nil, ToolOutput{}, err
		}

		res := checks.Execute(c, rc)
		output := ToolOutput{
			Passed:  res.Passed(),
			Results: []CheckOutcome{outcomeFor(res)},
			Report:  out.String(),
			Version: rc.Version,
		}
		return textResult(output.Report), output, nil
	})
}

func runChecklist(ctx context.Context, req *mcpsdk.CallToolRequest, input ToolInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	rc, out, err := newRunContext(input)
	if err != nil {
		return nil, ToolOutput{}, err
	}

	checks.Header(rc, checks.ProjectName(rc))
	results := checks.RunAll(rc)
	passed := checks.Summary(rc, results)

	outcomes := make([]CheckOutcome, 0, len(results))
	for _, res := range results {
		outcomes = append(outcomes, outcomeFor(res))
	}

	output := ToolOutput{
		Passed:  passed,
		Results: outcomes,
		Report:  out.String(),
		Version: rc.Version,
	}
	return textResult(output.Report), output, nil
}

func verifyImport(ctx context.Context, req *mcpsdk.CallToolRequest, input ToolInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	dir := projectDir(input)
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, ToolOutput{}, err
	}
	if input.Python != "" {
		cfg.Python = input.Python
	}

	opts, subject, err := verify.OptionsFor(dir, cfg)
	if err != nil {
		return nil, ToolOutput{}, err
	}

	res, err := verify.Run(ctx, verify.NewRunner(), opts)
	if err != nil {
		output := ToolOutput{
			Passed: false,
			Report: fmt.Sprintf("❌ Import failed: %v", err),
		}
		return textResult(output.Report), output, nil
	}

	output := ToolOutput{
		Passed:  true,
		Report:  fmt.Sprintf("✅ Import successful!\n📦 Package version: %s\n🎉 Ready to use %s!", res.Version, subject),
		Version: res.Version,
	}
	return textResult(output.Report), output, nil
}

// newRunContext resolves the project directory and its configuration into a
// checklist context rendering to a buffer.
func newRunContext(input ToolInput) (*checks.Context, *report.Buffered, error) {
	dir := projectDir(input)
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, nil, err
	}
	if input.Python != "" {
		cfg.Python = input.Python
	}

	out := report.NewBuffered()
	return &checks.Context{Dir: dir, Config: cfg, Out: out}, out, nil
}

func projectDir(input ToolInput) string {
	if input.ProjectDir != "" {
		return input.ProjectDir
	}
	return "."
}

func outcomeFor(res models.Result) CheckOutcome {
	o := CheckOutcome{Name: res.Name, Passed: res.Passed()}
	if res.Err != nil {
		o.Detail = res.Err.Error()
	}
	return o
}

func textResult(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: text},
		},
	}
}

func checkDescription(id string) string {
	descriptions := map[string]string{
		"version":      "Check that pyproject.toml and _version.py declare the same version",
		"files":        "Check that every required project file is present",
		"metadata":     "Check that pyproject.toml carries the required metadata fields",
		"readme":       "Check that the README covers installation, usage and examples",
		"dependencies": "Check core dependencies for packages that belong in optional extras",
		"dist":         "Validate built artifacts under dist/ against pyproject.toml",
		"signatures":   "Verify detached artifact signatures against the configured keyring",
	}

	if desc, ok := descriptions[id]; ok {
		return desc
	}
	return id
}
