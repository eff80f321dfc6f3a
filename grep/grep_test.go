package grep

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, cfg *Config) (*Runner, *bytes.Buffer) {
	t.Helper()
	if cfg.Color == "" {
		cfg.Color = "never"
	}
	var out bytes.Buffer
	r, err := NewRunner(cfg, &out, zerolog.Nop())
	require.NoError(t, err)
	return r, &out
}

func TestRunner_Stdin(t *testing.T) {
	r, out := newTestRunner(t, &Config{Pattern: `\d+`})

	matched, err := r.Run(strings.NewReader("alpha\nbeta 42\ngamma\n7 wins\n"))
	require.NoError(t, err)
	require.True(t, matched)
	require.Equal(t, "beta 42\n7 wins\n", out.String())
}

func TestRunner_StdinNoMatch(t *testing.T) {
	r, out := newTestRunner(t, &Config{Pattern: "^z"})

	matched, err := r.Run(strings.NewReader("alpha\nbeta\n"))
	require.NoError(t, err)
	require.False(t, matched)
	require.Empty(t, out.String())
}

func TestRunner_SingleFileNoPrefix(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	writeFile(t, file, "todo: buy milk\ndone: sleep\n")

	r, out := newTestRunner(t, &Config{Pattern: "^todo", Paths: []string{file}})

	matched, err := r.Run(nil)
	require.NoError(t, err)
	require.True(t, matched)
	require.Equal(t, "todo: buy milk\n", out.String())
}

func TestRunner_MultipleFilesPrefixed(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	writeFile(t, a, "match here\n")
	writeFile(t, b, "nothing\nanother match\n")

	r, out := newTestRunner(t, &Config{Pattern: "match", Paths: []string{a, b}})

	matched, err := r.Run(nil)
	require.NoError(t, err)
	require.True(t, matched)
	require.Equal(t, a+":match here\n"+b+":another match\n", out.String())
}

func TestRunner_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "one.log"), "hit alpha\n")
	writeFile(t, filepath.Join(dir, "sub", "two.log"), "miss\nhit beta\n")

	r, out := newTestRunner(t, &Config{Pattern: "^hit", Paths: []string{dir}, Recursive: true})

	matched, err := r.Run(nil)
	require.NoError(t, err)
	require.True(t, matched)

	got := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.ElementsMatch(t, []string{
		filepath.Join(dir, "one.log") + ":hit alpha",
		filepath.Join(dir, "sub", "two.log") + ":hit beta",
	}, got)
}

func TestRunner_LineNumbers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	writeFile(t, file, "aa\nbb\naa bb\n")

	r, out := newTestRunner(t, &Config{Pattern: "bb", Paths: []string{file}, LineNumbers: true})

	matched, err := r.Run(nil)
	require.NoError(t, err)
	require.True(t, matched)
	require.Equal(t, "2:bb\n3:aa bb\n", out.String())
}

func TestRunner_CountOnly(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	writeFile(t, file, "x\ny\nx\n")

	r, out := newTestRunner(t, &Config{Pattern: "x", Paths: []string{file}, CountOnly: true})

	matched, err := r.Run(nil)
	require.NoError(t, err)
	require.True(t, matched)
	require.Equal(t, "2\n", out.String())
}

func TestRunner_CountOnlyStdin(t *testing.T) {
	r, out := newTestRunner(t, &Config{Pattern: "x", CountOnly: true})

	matched, err := r.Run(strings.NewReader("x\ny\n"))
	require.NoError(t, err)
	require.True(t, matched)
	require.Equal(t, "1\n", out.String())
}

func TestRunner_UnreadableFileSkipped(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	writeFile(t, good, "ok line\n")

	cfg := &Config{Pattern: "ok", Paths: []string{good, filepath.Join(dir, "missing.txt")}}
	r, out := newTestRunner(t, cfg)

	matched, err := r.Run(nil)
	require.NoError(t, err)
	require.True(t, matched)
	// The missing path is dropped before the prefix decision, so the one
	// surviving file prints without a filename prefix.
	require.Equal(t, "ok line\n", out.String())
}

func TestRunner_BadPattern(t *testing.T) {
	var out bytes.Buffer
	_, err := NewRunner(&Config{Pattern: "(", Color: "never"}, &out, zerolog.Nop())
	require.Error(t, err)
	require.Contains(t, err.Error(), "compile pattern")
}

func TestRunner_Profile(t *testing.T) {
	cfg := &Config{Pattern: `\d+`, Profile: true}
	r, _ := newTestRunner(t, cfg)

	_, err := r.Run(strings.NewReader("a 1\nb\n"))
	require.NoError(t, err)

	var prof bytes.Buffer
	r.WriteProfile(&prof)
	require.Contains(t, prof.String(), "lines processed")
	require.Contains(t, prof.String(), "max active states")
}

func TestRunner_ProfileDisabled(t *testing.T) {
	r, _ := newTestRunner(t, &Config{Pattern: "x"})
	var prof bytes.Buffer
	r.WriteProfile(&prof)
	require.Empty(t, prof.String())
}

func TestRunner_Colorized(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	writeFile(t, file, "say hello there\n")

	r, out := newTestRunner(t, &Config{Pattern: "hello", Paths: []string{file}, Color: "always"})

	matched, err := r.Run(nil)
	require.NoError(t, err)
	require.True(t, matched)
	require.Equal(t, "say \x1b[1;31mhello\x1b[0m there\n", out.String())
}
