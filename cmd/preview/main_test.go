package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperboy/internal/types"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_WritesHTML(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer

	require.NoError(t, run([]string{"--out", dir}, &stdout, false, quietLogger()))

	path := filepath.Join(dir, htmlOutputName)
	assert.Equal(t, "Preview written to: "+path+"\n", stdout.String())

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Top theme")
	assert.Contains(t, string(body), "<style")
}

func TestRun_WritesText(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer

	require.NoError(t, run([]string{"--out", dir, "--text"}, &stdout, false, quietLogger()))

	body, err := os.ReadFile(filepath.Join(dir, textOutputName))
	require.NoError(t, err)
	assert.Contains(t, string(body), "Top theme")
	assert.NotContains(t, string(body), "<table")
}

func TestRun_Input(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "digest.json")

	tests := []struct {
		name    string
		content string
		wantErr string
		want    string
	}{
		{
			name:    "valid",
			content: `{"date":"Friday","user_name":"Grace","highlights":[{"title":"From file"}]}`,
			want:    "From file",
		},
		{name: "malformed", content: `{`, wantErr: "parse input"},
		{name: "invalid", content: `{"date":"Friday"}`, wantErr: "validation_invalid_digest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(input, []byte(tt.content), 0o644))

			err := run([]string{"--out", dir, "--input", input}, io.Discard, false, quietLogger())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			body, err := os.ReadFile(filepath.Join(dir, htmlOutputName))
			require.NoError(t, err)
			assert.Contains(t, string(body), tt.want)
		})
	}
}

func TestRun_MissingInput(t *testing.T) {
	err := run([]string{"--input", filepath.Join(t.TempDir(), "nope.json")}, io.Discard, false, quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input")
}

func TestRun_UnknownFlag(t *testing.T) {
	assert.Error(t, run([]string{"--bogus"}, io.Discard, false, quietLogger()))
}

func TestRun_Tokens(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, run([]string{"--tokens"}, &stdout, false, quietLogger()))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "colors."), lines[0])
	assert.Contains(t, stdout.String(), "type.font_body = ")
}

func TestSlogAdapter_ImplementsLogger(t *testing.T) {
	var _ types.Logger = &slogAdapter{logger: quietLogger()}
}
