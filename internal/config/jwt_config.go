package config

import "os"

type JwtConfig struct {
	Secret     string
	CookieName string
}

func NewJwtConfig() *JwtConfig {
	return &JwtConfig{
		Secret:     os.Getenv("JWT_SECRET"),
		CookieName: getEnv("JWT_COOKIE_NAME", "token"),
	}
}
