package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

var ErrNoToken = errors.New("not logged in")

// SaveToken stores a bearer token at path, readable only by the owner.
func SaveToken(path, token string) error {
	if err := os.WriteFile(path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// LoadToken reads the token saved by SaveToken, or ErrNoToken.
func LoadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
