// Package paths provides centralized path handling for chipbuild.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/chipbuild/chipbuild/pkg/errors"
)

// Environment variable names
const (
	// EnvChipRoot is the primary environment variable for the CHIP checkout
	EnvChipRoot = "CHIP_ROOT"

	// EnvConfigDir overrides the XDG config directory for chipbuild
	EnvConfigDir = "CHIPBUILD_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for chipbuild
	EnvCacheDir = "CHIPBUILD_CACHE_DIR"

	// EnvStateDir overrides the XDG state directory for chipbuild
	EnvStateDir = "CHIPBUILD_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for chipbuild-specific files
	AppDirName = "chipbuild"

	// ConfigFileName is the name of the configuration file
	ConfigFileName = "chipbuild.toml"

	// LogFileName is the name of the log file
	LogFileName = "chipbuild.log"
)

// Paths provides centralized path management for chipbuild
type Paths interface {
	SourceRoot() string
	UsedFallback() bool
	ConfigDir() string
	CacheDir() string
	StateDir() string
	ConfigFilePath() string
	RootConfigFilePath() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
}

type paths struct {
	// sourceRoot is the CHIP checkout all builds read sources from
	sourceRoot string

	xdgConfig string
	xdgCache  string
	xdgState  string

	// usedFallback indicates if we fell back to cwd (for warning display)
	usedFallback bool
}

// New creates a new Paths instance with the given source root. If sourceRoot
// is empty, it will be determined from environment variables or defaults.
func New(sourceRoot string) (Paths, error) {
	p := &paths{}

	if sourceRoot == "" {
		root, usedFallback, err := findSourceRoot()
		if err != nil {
			return nil, err
		}
		p.sourceRoot = root
		p.usedFallback = usedFallback
	} else {
		p.sourceRoot = expandHome(sourceRoot)
		p.usedFallback = false
	}

	absRoot, err := filepath.Abs(p.sourceRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for source root")
	}
	p.sourceRoot = absRoot

	p.setupXDGDirs()
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if cacheDir := os.Getenv(EnvCacheDir); cacheDir != "" {
		p.xdgCache = expandHome(cacheDir)
	} else {
		p.xdgCache = filepath.Join(xdg.CacheHome, AppDirName)
	}

	// State directory - XDG doesn't provide StateHome, so we check manually
	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		p.xdgState = expandHome(stateDir)
	} else if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		p.xdgState = filepath.Join(stateHome, AppDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", AppDirName)
	}
}

// findSourceRoot determines the CHIP checkout root using the following
// priority:
// 1. CHIP_ROOT environment variable (if set)
// 2. Git repository root (found via 'git rev-parse --show-toplevel')
// 3. Current working directory (fallback)
//
// The function returns:
// - string: The resolved source root path
// - bool: Whether the current working directory was used as fallback
// - error: Any error that occurred during resolution
//
// This covers the three common scenarios:
// - Explicit configuration via CHIP_ROOT
// - Automatic detection when run from within the checkout
// - Fallback to current directory for quick testing
func findSourceRoot() (string, bool, error) {
	if root := os.Getenv(EnvChipRoot); root != "" {
		return expandHome(root), false, nil
	}

	gitRoot, err := findGitRoot()
	if err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}
	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		// Git command failed - not in a git repo or git not installed
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// SourceRoot returns the CHIP checkout root
func (p *paths) SourceRoot() string {
	return p.sourceRoot
}

// UsedFallback returns true if the current working directory was used as fallback
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// ConfigDir returns the XDG config directory for chipbuild
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// CacheDir returns the XDG cache directory for chipbuild
func (p *paths) CacheDir() string {
	return p.xdgCache
}

// StateDir returns the XDG state directory for chipbuild
func (p *paths) StateDir() string {
	return p.xdgState
}

// ConfigFilePath returns the path to the user-level configuration file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// RootConfigFilePath returns the path to the checkout-level configuration
// file, which takes precedence over the user-level one
func (p *paths) RootConfigFilePath() string {
	return filepath.Join(p.sourceRoot, ConfigFileName)
}

// LogFilePath returns the path to the chipbuild log file
// Respects XDG_STATE_HOME if set
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	expanded := expandHome(path)

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}
