package grep

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// CollectFiles expands the target paths into the list of regular files to
// search, in walk order. With recursive set, directories are walked and a
// file target is taken as-is; without it, directories are diagnosed and
// skipped. Unreadable entries are logged and skipped rather than aborting
// the run.
func CollectFiles(targets []string, cfg *Config, log zerolog.Logger) []string {
	var files []string
	for _, target := range targets {
		if cfg.Recursive {
			files = append(files, walkTarget(target, cfg, log)...)
			continue
		}

		info, err := os.Stat(target)
		if err != nil {
			log.Error().Str("path", target).Err(err).Msg("path not found")
			continue
		}
		if !info.Mode().IsRegular() {
			log.Warn().Str("path", target).Msg("skipping non-regular file (use -r for directories)")
			continue
		}
		files = append(files, target)
	}
	return files
}

func walkTarget(target string, cfg *Config, log zerolog.Logger) []string {
	info, err := os.Stat(target)
	if err != nil {
		log.Error().Str("path", target).Err(err).Msg("path not found")
		return nil
	}
	if info.Mode().IsRegular() {
		return []string{target}
	}
	if !info.IsDir() {
		return nil
	}

	var files []string
	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Str("path", path).Err(err).Msg("skipping unreadable entry")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path != target && !cfg.Hidden && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if cfg.MaxDepth > 0 && walkDepth(target, path) >= cfg.MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		log.Error().Str("path", target).Err(err).Msg("walk failed")
	}
	return files
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// walkDepth counts directory levels of path below root.
func walkDepth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
