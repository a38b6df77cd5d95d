package utils

import "os"

// JWTSecret returns the shared HS256 signing key.
func JWTSecret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("secret-key")
}
