// Package main implements the preview CLI, which renders a digest to a file
// for viewing in a browser or mail client.
//
// Usage:
//
//	go run ./cmd/preview
//	go run ./cmd/preview --out=tmp --text
//	go run ./cmd/preview --input=digest.json --inline-css
//	go run ./cmd/preview --tokens
//
// Without --input the built-in sample digest is rendered. The output file is
// digest_preview.html (or digest_preview.txt with --text) inside --out.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"paperboy/internal/config"
	"paperboy/internal/digest"
	"paperboy/internal/render"
	"paperboy/internal/theme"
	"paperboy/internal/types"
)

// Output file names, relative to --out.
const (
	htmlOutputName = "digest_preview.html"
	textOutputName = "digest_preview.txt"
)

// slogAdapter wraps *slog.Logger to implement the types.Logger interface.
type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Info(msg string, args ...any)  { a.logger.Info(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.logger.Error(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.logger.Warn(msg, args...) }
func (a *slogAdapter) With(args ...any) types.Logger {
	return &slogAdapter{logger: a.logger.With(args...)}
}

func main() {
	inlineDefault := false
	if cfg, err := config.LoadConfig(); err == nil {
		inlineDefault = cfg.Email.InlineCSS
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if err := run(os.Args[1:], os.Stdout, inlineDefault, logger); err != nil {
		fmt.Fprintf(os.Stderr, "preview: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, renders the digest and reports the written path on stdout.
func run(args []string, stdout io.Writer, inlineDefault bool, logger *slog.Logger) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	out := fs.String("out", ".", "Directory to write the preview into")
	input := fs.String("input", "", "JSON file holding a digest (defaults to the built-in sample)")
	text := fs.Bool("text", false, "Render the plain-text body instead of HTML")
	tokens := fs.Bool("tokens", false, "Print the theme tokens and exit")
	inline := fs.Bool("inline-css", inlineDefault, "Inline the <style> block into element attributes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *tokens {
		return printTokens(stdout)
	}

	d, err := loadDigest(*input)
	if err != nil {
		return err
	}

	renderer := render.NewRenderer(render.RendererConfig{
		InlineCSS: *inline,
		Logger:    &slogAdapter{logger: logger},
	})

	var (
		body string
		name = htmlOutputName
	)
	if *text {
		name = textOutputName
		body, err = renderer.RenderText(d)
	} else {
		body, err = renderer.Render(d)
	}
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(*out, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}

	fmt.Fprintf(stdout, "Preview written to: %s\n", path)
	return nil
}

// loadDigest reads and validates a digest from path, or returns the sample.
func loadDigest(path string) (*types.DigestEmailData, error) {
	if path == "" {
		return digest.Sample(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	var d types.DigestEmailData
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	if err := digest.Validate(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// printTokens writes every theme token as "name = value", sorted by name.
func printTokens(w io.Writer) error {
	flat := theme.Default().Flatten()
	names := make([]string, 0, len(flat))
	for name := range flat {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s = %s\n", name, flat[name]); err != nil {
			return err
		}
	}
	return nil
}
