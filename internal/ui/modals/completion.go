package modals

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PathCompleter completes file system paths typed into the path modal.
// Directories complete with a trailing slash so the next tab lists them.
type PathCompleter struct {
	matches []string
	prefix  string
}

// NewPathCompleter creates a new path completer.
func NewPathCompleter() *PathCompleter {
	return &PathCompleter{}
}

// Reset clears the current matches.
func (pc *PathCompleter) Reset() {
	pc.matches = nil
	pc.prefix = ""
}

// Matches returns the matches from the last Generate.
func (pc *PathCompleter) Matches() []string {
	return pc.matches
}

// CommonPrefix returns the longest prefix every match shares.
func (pc *PathCompleter) CommonPrefix() string {
	return commonPrefix(pc.matches)
}

// Generate lists the entries that could complete path. Hidden entries are
// skipped unless the typed name starts with a dot.
func (pc *PathCompleter) Generate(path string) {
	pc.matches = nil
	pc.prefix = path

	expanded := ExpandHome(path)
	if expanded == "" {
		expanded = "." + string(filepath.Separator)
	}

	if info, err := os.Stat(expanded); err == nil && info.IsDir() && !strings.HasSuffix(expanded, "/") {
		pc.matches = []string{path + "/"}
		return
	}

	dir, base := filepath.Split(expanded)
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	// Matches keep the user's spelling of the directory part.
	typedDir, _ := filepath.Split(path)
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(name), strings.ToLower(base)) {
			continue
		}
		match := typedDir + name
		if entry.IsDir() {
			match += "/"
		}
		pc.matches = append(pc.matches, match)
	}
	sort.Strings(pc.matches)
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// commonPrefix finds the longest common prefix among all strings.
func commonPrefix(strs []string) string {
	if len(strs) == 0 {
		return ""
	}
	prefix := strs[0]
	for _, s := range strs[1:] {
		for !strings.HasPrefix(s, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}
