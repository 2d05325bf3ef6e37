package cli

import (
	"github.com/ralt/prepub/internal/mcp"
	"github.com/ralt/prepub/internal/version"
	"github.com/spf13/cobra"
)

// NewMCPCmd creates the mcp command
func NewMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the checklist as MCP tools over stdio",
		Long: `Starts a Model Context Protocol server on stdin/stdout exposing each
checklist item, the full checklist and import verification as tools.
Logs go to stderr; stdout belongs to the protocol.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mcp.Serve(cmd.Context(), version.Version)
		},
	}
}
