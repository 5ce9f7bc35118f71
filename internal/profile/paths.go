package profile

import (
	"os"
	"path/filepath"
)

// BaseDirEnv overrides the ~/.pairchat base directory when set.
const BaseDirEnv = "PAIRCHAT_HOME"

// BaseDir returns ~/.pairchat, or $PAIRCHAT_HOME when set.
func BaseDir() string {
	if dir := os.Getenv(BaseDirEnv); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pairchat")
}

// Dir returns the profile-specific directory.
func Dir(name string) string {
	return filepath.Join(BaseDir(), "profiles", name)
}

// SocketPath returns the UDS socket path for a profile.
func SocketPath(name string) string {
	return filepath.Join(Dir(name), "daemon.sock")
}

// LockPath returns the lock file path for a profile.
func LockPath(name string) string {
	return filepath.Join(Dir(name), "LOCK")
}

// DBPath returns the SQLite database path.
func DBPath(name string) string {
	return filepath.Join(Dir(name), "pairchat.db")
}

// SigningKeyPath returns the token signing key path.
func SigningKeyPath(name string) string {
	return filepath.Join(Dir(name), "signing.key")
}

// TokenPath returns where pairchatctl keeps the bearer token after login.
func TokenPath(name string) string {
	return filepath.Join(Dir(name), "token")
}

// LogDir returns the log directory for a profile.
func LogDir(name string) string {
	return filepath.Join(Dir(name), "logs")
}

// LogPath returns the daemon log file path.
func LogPath(name string) string {
	return filepath.Join(LogDir(name), "pairchatd.log")
}

// ConfigPath returns the global config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// EnsureDir creates the profile directory tree with proper permissions.
func EnsureDir(name string) error {
	dirs := []string{
		Dir(name),
		LogDir(name),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}
