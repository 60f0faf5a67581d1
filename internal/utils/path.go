package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// MaxParentDepth bounds how far FindUpward climbs from its start directory.
const MaxParentDepth = 5

// ConfigDir returns the per-user directory for the named application.
func ConfigDir(app string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, app)
		}
		return filepath.Join(homeDir, ".config", app)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, app)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", app)
	default:
		return filepath.Join(homeDir, ".config", app)
	}
}

// FindUpward looks for rel in start and up to MaxParentDepth of its parents,
// returning the first existing path. Absolute rel paths are checked as-is.
func FindUpward(start, rel string) (string, error) {
	if filepath.IsAbs(rel) {
		if FileExists(rel) {
			return rel, nil
		}
		return "", os.ErrNotExist
	}

	dir := start
	for depth := 0; depth <= MaxParentDepth; depth++ {
		candidate := filepath.Join(dir, rel)
		if FileExists(candidate) {
			log.Debugf("Found %s at %s", rel, candidate)
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// ResolveDataFile finds rel relative to the working directory, the executable's
// directory, or their parents.
func ResolveDataFile(rel string) (string, error) {
	var starts []string
	if cwd, err := os.Getwd(); err == nil {
		starts = append(starts, cwd)
	}
	if execPath, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
			execPath = resolved
		}
		starts = append(starts, filepath.Dir(execPath))
	}

	for _, start := range starts {
		if path, err := FindUpward(start, rel); err == nil {
			return path, nil
		}
	}
	log.Debugf("Data file %s not found from %v", rel, starts)
	return "", os.ErrNotExist
}
