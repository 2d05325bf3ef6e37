package mcp

// ToolInput is the common input for every prepub tool.
type ToolInput struct {
	ProjectDir string `json:"project_dir,omitempty" jsonschema:"path to the project root, defaults to the server's working directory"`
	Python     string `json:"python,omitempty" jsonschema:"python interpreter to use for import verification"`
}

// CheckOutcome is one checklist item's result.
type CheckOutcome struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// ToolOutput is the structured result of a tool call.
type ToolOutput struct {
	Passed  bool           `json:"passed"`
	Results []CheckOutcome `json:"results,omitempty"`
	Report  string         `json:"report"`
	Version string         `json:"version,omitempty"`
}
