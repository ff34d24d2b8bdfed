package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/docindex/cmd/docindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("builds, saves and lists snapshots", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "guide.md"), []byte(guideMarkdown), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "appendix.html"), []byte(
			`<html><head><title>Appendix</title></head><body><main><h2>Appendix I</h2><p>Metal details.</p></main></body></html>`,
		), 0o644))
		args := []string{
			"--config", filepath.Join(dir, "none.yaml"),
			"--dir", dir,
			"--db", filepath.Join(t.TempDir(), "index.db"),
		}
		ctx := context.Background()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := main.NewMain().Run(ctx, append(args, "build"), stdout, stderr)
		require.NoError(t, err, stderr.String())
		assert.Contains(t, stdout.String(), "Indexed 2 documents")
		assert.Contains(t, stdout.String(), "References: 1 resolved, 0 dangling")
		assert.Contains(t, stdout.String(), "Saved snapshot")

		stdout.Reset()
		err = main.NewMain().Run(ctx, append(args, "snapshots"), stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "docs=2")
	})

	t.Run("check exits with error on dangling references", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "guide.md"), []byte(guideMarkdown), 0o644))

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(),
			[]string{"--config", filepath.Join(dir, "none.yaml"), "--dir", dir, "check"}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 dangling references")
		assert.Contains(t, stdout.String(), "points at missing appendix#appendix-i")
	})

	t.Run("returns error when no command given", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), nil, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("prints help", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "mentions")
		assert.Contains(t, stdout.String(), "relations")
	})
}
