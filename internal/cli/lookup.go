package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	mojang "github.com/steviee/go-mojang"
)

// lookupResult is one resolved name in the lookup output.
type lookupResult struct {
	Name  string `json:"name"`
	ID    string `json:"id,omitempty"`
	Found bool   `json:"found"`
}

// NewLookupCommand creates the lookup command.
func NewLookupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <username> [username...]",
		Short: "Resolve usernames to UUIDs",
		Long: `Resolve one or more Minecraft usernames to their account UUIDs.

A single name uses the direct lookup endpoint. Multiple names are sent
through the batch endpoint in chunks of up to ten names per request.
Names that do not belong to any account are reported as not found.`,
		Example: `  # Resolve a single username
  go-mojang lookup notch

  # Resolve several usernames at once
  go-mojang lookup notch jeb_ dinnerbone

  # JSON output
  go-mojang lookup --json notch`,
		Aliases: []string{"uuid"},
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return outputError(cmd.OutOrStdout(), err)
			}
			defer client.Close()

			return runLookup(cmd.Context(), cmd.OutOrStdout(), client, args)
		},
	}

	return cmd
}

func runLookup(ctx context.Context, w io.Writer, client *mojang.Client, names []string) error {
	results, err := resolveNames(ctx, client, names)
	if err != nil {
		return outputError(w, err)
	}

	if IsJSONOutput() {
		return outputLookupJSON(w, results)
	}

	return outputLookupHuman(w, results)
}

// resolveNames resolves names to UUIDs, using the single lookup endpoint
// for one name and chunked batch lookups otherwise.
func resolveNames(ctx context.Context, client *mojang.Client, names []string) ([]lookupResult, error) {
	if len(names) == 1 {
		id, err := client.GetUUID(ctx, names[0])
		if err != nil {
			return nil, err
		}
		return []lookupResult{newLookupResult(names[0], id)}, nil
	}

	// The batch endpoint caps each request, so larger inputs are chunked.
	found := make(map[string]uuid.UUID, len(names))
	for start := 0; start < len(names); start += mojang.MaxBatchNames {
		end := min(start+mojang.MaxBatchNames, len(names))

		batch, err := client.GetUUIDs(ctx, names[start:end])
		if err != nil {
			return nil, err
		}

		// Batch results come back keyed by the account's canonical
		// casing, so index them case-insensitively.
		for name, id := range batch {
			found[strings.ToLower(name)] = id
		}
	}

	results := make([]lookupResult, 0, len(names))
	for _, name := range names {
		id, ok := found[strings.ToLower(name)]
		if !ok {
			results = append(results, lookupResult{Name: name})
			continue
		}
		results = append(results, newLookupResult(name, id))
	}

	return results, nil
}

func newLookupResult(name string, id uuid.UUID) lookupResult {
	if id == uuid.Nil {
		return lookupResult{Name: name}
	}
	return lookupResult{Name: name, ID: id.String(), Found: true}
}

func outputLookupJSON(w io.Writer, results []lookupResult) error {
	foundCount := 0
	for _, r := range results {
		if r.Found {
			foundCount++
		}
	}

	return writeJSON(w, Output{
		Status:  "success",
		Data:    map[string]interface{}{"results": results},
		Message: fmt.Sprintf("Resolved %d of %d name(s)", foundCount, len(results)),
	})
}

func outputLookupHuman(w io.Writer, results []lookupResult) error {
	for _, r := range results {
		if r.Found {
			_, _ = fmt.Fprintf(w, "%s\t%s\n", r.Name, r.ID)
		} else {
			_, _ = fmt.Fprintf(w, "%s\tnot found\n", r.Name)
		}
	}
	return nil
}
