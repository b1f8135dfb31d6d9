package secret

import (
	"fmt"
	"os"
	"strings"
)

// EnvStore implements SecretStore over environment variables, for
// headless runs where no keychain is available. The key "postgres" is
// read from AIRNAV_SECRET_POSTGRES, and so on. Set and Delete only
// affect the current process.
type EnvStore struct{}

// NewEnvStore creates a new EnvStore.
func NewEnvStore() *EnvStore {
	return &EnvStore{}
}

func envName(key string) string {
	name := strings.ToUpper(key)
	name = strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, name)
	return "AIRNAV_SECRET_" + name
}

// Set stores the secret in this process's environment.
func (e *EnvStore) Set(key string, value []byte) error {
	if err := os.Setenv(envName(key), string(value)); err != nil {
		return fmt.Errorf("env set: %w", err)
	}
	return nil
}

// Get reads the secret from the environment. Returns nil and no error
// when the variable is unset.
func (e *EnvStore) Get(key string) ([]byte, error) {
	v, ok := os.LookupEnv(envName(key))
	if !ok {
		return nil, nil
	}
	return []byte(v), nil
}

// Delete unsets the variable in this process's environment.
func (e *EnvStore) Delete(key string) error {
	return os.Unsetenv(envName(key))
}
