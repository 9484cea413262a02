package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	mojang "github.com/steviee/go-mojang"
)

// NewUsernameCommand creates the username command.
func NewUsernameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "username <uuid>",
		Short: "Look up the current username for a UUID",
		Long: `Look up the username currently attached to an account UUID.

The UUID may be given with or without dashes.`,
		Example: `  # Look up a username
  go-mojang username 069a79f4-44e9-4726-a5be-fca90e38aaf5

  # Undashed UUIDs work too
  go-mojang username 069a79f444e94726a5befca90e38aaf5`,
		Aliases: []string{"name"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return outputError(cmd.OutOrStdout(), fmt.Errorf("invalid UUID %q: %w", args[0], err))
			}

			client, err := newClient()
			if err != nil {
				return outputError(cmd.OutOrStdout(), err)
			}
			defer client.Close()

			return runUsername(cmd.Context(), cmd.OutOrStdout(), client, id)
		},
	}

	return cmd
}

func runUsername(ctx context.Context, w io.Writer, client *mojang.Client, id uuid.UUID) error {
	name, err := client.GetUsername(ctx, id)
	if err != nil {
		return outputError(w, err)
	}

	if IsJSONOutput() {
		return outputUsernameJSON(w, id, name)
	}

	return outputUsernameHuman(w, id, name)
}

func outputUsernameJSON(w io.Writer, id uuid.UUID, name string) error {
	return writeJSON(w, Output{
		Status: "success",
		Data: map[string]interface{}{
			"id":    id.String(),
			"name":  name,
			"found": name != "",
		},
	})
}

func outputUsernameHuman(w io.Writer, id uuid.UUID, name string) error {
	if name == "" {
		_, _ = fmt.Fprintf(w, "no profile found for %s\n", id)
		return nil
	}

	_, _ = fmt.Fprintln(w, name)
	return nil
}
