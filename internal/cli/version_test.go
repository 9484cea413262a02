package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.0.0", "abc123", "2026-08-23", "goreleaser")

	assert.Equal(t, "version", cmd.Use)
	assert.Equal(t, "Print version information", cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotEmpty(t, cmd.Example)
}

func TestPrintVersion_TextFormat(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		builtBy string
		want    []string
	}{
		{
			name:    "prints all version info",
			version: "1.0.0",
			commit:  "abc123",
			date:    "2026-08-23",
			builtBy: "goreleaser",
			want: []string{
				"go-mojang version 1.0.0",
				"Commit: abc123",
				"Built: 2026-08-23",
				"Built by: goreleaser",
			},
		},
		{
			name:    "prints dev version",
			version: "dev",
			commit:  "unknown",
			date:    "unknown",
			builtBy: "unknown",
			want: []string{
				"go-mojang version dev",
				"Commit: unknown",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			err := printVersion(&buf, tt.version, tt.commit, tt.date, tt.builtBy)
			require.NoError(t, err)

			output := buf.String()
			for _, want := range tt.want {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestPrintVersion_JSONFormat(t *testing.T) {
	// Set JSON output mode
	jsonOut = true
	defer func() { jsonOut = false }()

	var buf bytes.Buffer

	err := printVersion(&buf, "1.0.0", "abc123", "2026-08-23", "goreleaser")
	require.NoError(t, err)

	// Verify valid JSON
	var result struct {
		Status string      `json:"status"`
		Data   VersionInfo `json:"data"`
	}
	err = json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "1.0.0", result.Data.Version)
	assert.Equal(t, "abc123", result.Data.Commit)
	assert.Equal(t, "2026-08-23", result.Data.Date)
	assert.Equal(t, "goreleaser", result.Data.BuiltBy)
}

func TestVersionCommand_Execute(t *testing.T) {
	tests := []struct {
		name       string
		jsonMode   bool
		wantOutput []string
	}{
		{
			name:     "text output",
			jsonMode: false,
			wantOutput: []string{
				"go-mojang version 1.0.0",
				"Commit: abc123",
			},
		},
		{
			name:     "json output",
			jsonMode: true,
			wantOutput: []string{
				`"status": "success"`,
				`"version": "1.0.0"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonOut = tt.jsonMode
			defer func() { jsonOut = false }()

			cmd := NewVersionCommand("1.0.0", "abc123", "2026-08-23", "goreleaser")
			cmd.SetArgs([]string{})

			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)

			err := cmd.Execute()
			require.NoError(t, err)

			output := out.String()
			for _, want := range tt.wantOutput {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestPrintVersionText_Format(t *testing.T) {
	info := VersionInfo{
		Version: "1.0.0",
		Commit:  "abc123",
		Date:    "2026-08-23",
		BuiltBy: "goreleaser",
	}

	var buf bytes.Buffer
	err := printVersionText(&buf, info)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	assert.Contains(t, lines[0], "go-mojang version 1.0.0")
	assert.Contains(t, lines[1], "Commit: abc123")
	assert.Contains(t, lines[2], "Built: 2026-08-23")
	assert.Contains(t, lines[3], "Built by: goreleaser")
}
