package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	mojang "github.com/steviee/go-mojang"
)

// NewBlockedCommand creates the blocked command.
func NewBlockedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocked",
		Short: "List blocked server hashes",
		Long: `List the SHA-1 hashes of server addresses blocked by Mojang.

The upstream blocklist only exposes hashes, not the addresses
themselves, so matching a specific server means hashing its address
patterns and comparing.`,
		Example: `  # List all blocked server hashes
  go-mojang blocked

  # JSON output with a count
  go-mojang blocked --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return outputError(cmd.OutOrStdout(), err)
			}
			defer client.Close()

			return runBlocked(cmd.Context(), cmd.OutOrStdout(), client)
		},
	}

	return cmd
}

func runBlocked(ctx context.Context, w io.Writer, client *mojang.Client) error {
	hashes, err := client.GetBlockedServers(ctx)
	if err != nil {
		return outputError(w, err)
	}

	if IsJSONOutput() {
		return writeJSON(w, Output{
			Status: "success",
			Data: map[string]interface{}{
				"count":  len(hashes),
				"hashes": hashes,
			},
		})
	}

	for _, hash := range hashes {
		_, _ = fmt.Fprintln(w, hash)
	}

	return nil
}
