package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumelens/portfolio-analyzer/internal/testutil"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writePDF(t *testing.T, pages ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(path, testutil.BuildPDF(pages...), 0o600))
	return path
}

func TestVariantsCommand(t *testing.T) {
	t.Setenv("MAX_TOKENS", "")
	t.Setenv("TEMPERATURE", "")

	out, err := execute(t, "variants")
	require.NoError(t, err)

	assert.Contains(t, out, "project")
	assert.Contains(t, out, "portfolio")
	assert.Contains(t, out, "gap-analysis")
	assert.Contains(t, out, "2000")
}

func TestPromptCommand(t *testing.T) {
	path := writePDF(t, "Jane Doe\nBuilt a Go payments gateway")

	out, err := execute(t, "prompt", "--file", path, "--variant", "portfolio", "--links", "https://github.com/jane")
	require.NoError(t, err)

	assert.Contains(t, out, "Built a Go payments gateway")
	assert.Contains(t, out, "https://github.com/jane")
}

func TestPromptCommandRejectsUnknownVariant(t *testing.T) {
	path := writePDF(t, "Jane Doe")

	_, err := execute(t, "prompt", "--file", path, "--variant", "tarot")
	assert.Error(t, err)
}

func TestAnalyzeCommandWithoutKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	path := writePDF(t, "Jane Doe")

	_, err := execute(t, "analyze", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_API_KEY")
}

func TestAnalyzeCommandRejectsNonPDF(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")
	path := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("just some text"), 0o600))

	_, err := execute(t, "analyze", "--file", path)
	require.Error(t, err)
	assert.Equal(t, "Only PDF files are allowed", err.Error())
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "resumectl version: unknown\n", out)
}

func TestExtractCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), testutil.BuildPDF("Alice", "Projects"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pdf"), testutil.BuildPDF(""), 0o600))

	out, err := execute(t, "extract", "--dir", dir)
	require.Error(t, err)

	assert.Contains(t, out, "a.pdf: 2 pages")
	assert.Contains(t, out, "b.pdf: Could not extract text from PDF")
	assert.Contains(t, out, "1 ok, 1 failed")
}
