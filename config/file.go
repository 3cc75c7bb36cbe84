package config

import (
	"fmt"
	os2 "os"
	"path/filepath"
	"strings"

	"github.com/cometbft/cometbft/libs/os"
	"github.com/traumschule/joyutils/log"
)

// ReadFile resolves a short config path (ex. ~/.joyutils/config.yml => /home/joy/.joyutils/config.yml)
// and fails if nothing is there.
func ReadFile(configFile string) (string, error) {
	expandedConfigFile := ExpandHomeDir(configFile)
	if !os.FileExists(expandedConfigFile) {
		return "", fmt.Errorf("failed to load config file at: %s", configFile)
	}
	return expandedConfigFile, nil
}

func CreateDirectoryIfNeeded(configurationDirectory string, logger *log.Logger) error {
	expanded := ExpandHomeDir(configurationDirectory)
	exists, err := folderExists(expanded)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	err = os2.MkdirAll(expanded, 0o755)
	if err != nil {
		return err
	}

	logger.Info("created configuration directory", "configuration_dir", configurationDirectory)
	return nil
}

// SafeWrite writes a file unless one already exists.
func SafeWrite(file string, contents []byte, logger *log.Logger) error {
	expanded := ExpandHomeDir(file)
	if os.FileExists(expanded) {
		logger.Warn("skipping overwriting existing file", "file", expanded)
		return nil
	}

	return writeFile(expanded, contents, logger)
}

// Overwrite writes a file, replacing any previous contents.
func Overwrite(file string, contents []byte, logger *log.Logger) error {
	return writeFile(ExpandHomeDir(file), contents, logger)
}

func writeFile(expanded string, contents []byte, logger *log.Logger) error {
	if err := CreateDirectoryIfNeeded(filepath.Dir(expanded), logger); err != nil {
		return err
	}

	// Settings may name wallets, keep them private to the user.
	err := os.WriteFile(expanded, contents, 0o600)
	if err != nil {
		return err
	}
	logger.Debug("wrote file", "file", expanded)
	return nil
}

// ExpandHomeDir replaces a leading "~" with the user's home directory. Paths are returned unchanged when
// there is no home directory to expand to.
func ExpandHomeDir(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os2.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func FileExists(filePath string) bool {
	return os.FileExists(ExpandHomeDir(filePath))
}

func folderExists(folderPath string) (bool, error) {
	fileInfo, err := os2.Stat(folderPath)
	if err != nil {
		if os2.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return fileInfo.IsDir(), nil
}
