package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SecretsDir is where Docker mounts secret files.
var SecretsDir = "/run/secrets"

// ReadSecret reads a Docker secret file named secretName.
func ReadSecret(secretName string) (string, error) {
	filePath := filepath.Join(SecretsDir, secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", filePath)
	}
	return secret, nil
}

// ReadSecretOrEnv prefers the secret file and falls back to the environment
// variable envKey. It fails only when neither source has a value.
func ReadSecretOrEnv(secretName, envKey string) (string, error) {
	secret, err := ReadSecret(secretName)
	if err == nil {
		return secret, nil
	}
	if value := strings.TrimSpace(os.Getenv(envKey)); value != "" {
		return value, nil
	}
	return "", errors.Join(err, fmt.Errorf("environment variable %s is not set", envKey))
}
