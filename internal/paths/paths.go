package paths

import (
	"os"
	"path/filepath"
)

const (
	AppDirName     = "boolflag"
	ConfigFileName = "boolflag-config.json"
)

// DataDir returns the platform-specific directory for boolflag files:
//   - Windows: %APPDATA%\boolflag
//   - Unix:    ~/.config/boolflag
//
// Falls back to os.TempDir()/boolflag if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}

// ConfigCandidates lists where a config file is looked for when no
// explicit path is given, in order: next to the binary, then DataDir.
func ConfigCandidates() []string {
	var out []string
	if exe, err := os.Executable(); err == nil {
		out = append(out, filepath.Join(filepath.Dir(exe), ConfigFileName))
	}
	return append(out, filepath.Join(DataDir(), ConfigFileName))
}
