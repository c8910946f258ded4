package config

import (
	"os"

	"github.com/joho/godotenv"
)

// dotenvFiles in priority order; godotenv never overwrites a variable
// that is already set, so OS env wins and earlier files shadow later ones.
var dotenvFiles = [...]string{".env.local", ".env"}

// LoadDotEnv loads whichever dotenv files exist in the working directory
// and reports the ones it found.
func LoadDotEnv() []string {
	var found []string
	for _, name := range dotenvFiles {
		if _, err := os.Stat(name); err == nil {
			found = append(found, name)
		}
	}
	if len(found) > 0 {
		_ = godotenv.Load(found...)
	}
	return found
}
