package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	mojang "github.com/steviee/go-mojang"
)

// NewProfileCommand creates the profile command.
func NewProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile <uuid|username>",
		Short: "Fetch the full profile for a player",
		Long: `Fetch the full session profile for a player, including the decoded
skin and cape texture URLs.

The player may be identified by UUID (dashed or undashed) or by
username. Usernames cost one extra API call for the UUID lookup.`,
		Example: `  # Fetch a profile by username
  go-mojang profile notch

  # Fetch a profile by UUID
  go-mojang profile 069a79f4-44e9-4726-a5be-fca90e38aaf5

  # JSON output
  go-mojang profile --json notch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return outputError(cmd.OutOrStdout(), err)
			}
			defer client.Close()

			return runProfile(cmd.Context(), cmd.OutOrStdout(), client, args[0])
		},
	}

	return cmd
}

func runProfile(ctx context.Context, w io.Writer, client *mojang.Client, target string) error {
	id, err := resolveTarget(ctx, client, target)
	if err != nil {
		return outputError(w, err)
	}

	if id == uuid.Nil {
		return outputProfileNotFound(w, target)
	}

	profile, err := client.GetProfile(ctx, id)
	if err != nil {
		return outputError(w, err)
	}

	if profile == nil {
		return outputProfileNotFound(w, target)
	}

	if IsJSONOutput() {
		return writeJSON(w, Output{Status: "success", Data: profile})
	}

	return outputProfileHuman(w, profile)
}

// resolveTarget turns a UUID or username argument into a UUID. It
// returns uuid.Nil when a username does not resolve to any account.
func resolveTarget(ctx context.Context, client *mojang.Client, target string) (uuid.UUID, error) {
	if id, err := uuid.Parse(target); err == nil {
		return id, nil
	}

	return client.GetUUID(ctx, target)
}

func outputProfileNotFound(w io.Writer, target string) error {
	if IsJSONOutput() {
		return writeJSON(w, Output{
			Status:  "success",
			Data:    map[string]interface{}{"found": false},
			Message: fmt.Sprintf("No profile found for %s", target),
		})
	}

	_, _ = fmt.Fprintf(w, "no profile found for %s\n", target)
	return nil
}

func outputProfileHuman(w io.Writer, p *mojang.UserProfile) error {
	_, _ = fmt.Fprintf(w, "Name:         %s\n", p.Name)
	_, _ = fmt.Fprintf(w, "UUID:         %s\n", p.ID)
	_, _ = fmt.Fprintf(w, "Fetched:      %s\n", time.UnixMilli(p.Timestamp).UTC().Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "Skin variant: %s\n", p.SkinVariant)
	if p.SkinURL != "" {
		_, _ = fmt.Fprintf(w, "Skin URL:     %s\n", p.SkinURL)
	}
	if p.CapeURL != "" {
		_, _ = fmt.Fprintf(w, "Cape URL:     %s\n", p.CapeURL)
	}
	if p.Legacy {
		_, _ = fmt.Fprintln(w, "Legacy:       yes")
	}

	return nil
}
