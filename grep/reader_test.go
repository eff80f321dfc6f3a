package grep

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func collectLines(t *testing.T, input string) []string {
	t.Helper()
	var lines []string
	err := ForEachLine(bufio.NewReader(strings.NewReader(input)), func(line []byte) error {
		lines = append(lines, string(line))
		return nil
	})
	require.NoError(t, err)
	return lines
}

func TestForEachLine(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c"}, collectLines(t, "a\nb\nc\n"))
	require.Equal(t, []string{"a", "b"}, collectLines(t, "a\nb")) // no trailing newline
	require.Empty(t, collectLines(t, ""))
	require.Equal(t, []string{"", "x", ""}, collectLines(t, "\nx\n\n"))
}

func TestForEachLine_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	count := 0
	err := ForEachLine(bufio.NewReader(strings.NewReader("a\nb\nc\n")), func([]byte) error {
		count++
		if count == 2 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, count)
}

func TestForEachFileLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644))

	var lines []string
	err := ForEachFileLine(path, func(line []byte) error {
		lines = append(lines, string(line))
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two", "three"}, lines)
}

func TestForEachFileLine_Missing(t *testing.T) {
	err := ForEachFileLine(filepath.Join(t.TempDir(), "nope"), func([]byte) error { return nil })
	require.Error(t, err)
}

func TestForEachMappedLine(t *testing.T) {
	var lines []string
	collect := func(line []byte) error {
		lines = append(lines, string(line))
		return nil
	}

	require.NoError(t, forEachMappedLine([]byte("a\nbb\nccc"), collect))
	require.Equal(t, []string{"a", "bb", "ccc"}, lines)

	lines = nil
	require.NoError(t, forEachMappedLine([]byte("a\n"), collect))
	require.Equal(t, []string{"a"}, lines)

	lines = nil
	require.NoError(t, forEachMappedLine(nil, collect))
	require.Empty(t, lines)
}
