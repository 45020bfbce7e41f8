package config

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

func ExpandHomePath(path string) string {
	res, err := homedir.Expand(path)
	if err != nil {
		panic(err)
	}
	return res
}

func HomeDirExists(path string) (bool, error) {
	stat, err := os.Stat(ExpandHomePath(path))
	if os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	if !stat.IsDir() {
		return false, errors.New("home dir path exists, but is a file")
	}
	return true, nil
}

// InitHomeDir creates the home directory and seeds it with the default
// config file.
func InitHomeDir(homePath string) error {
	if err := os.MkdirAll(ExpandHomePath(homePath), 0700); err != nil {
		return err
	}
	return WriteDefaultConfigFile(homePath)
}
