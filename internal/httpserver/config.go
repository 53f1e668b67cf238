package httpserver

import (
	"os"
	"strconv"
)

// Config is read once at startup. Tests build it directly.
type Config struct {
	JWTSecret      string // HS256 signing key
	JWTExpiresDays int    // token lifetime
	CookieName     string // auth token cookie
	ClientOrigin   string // single CORS origin allowed with credentials
	Production     bool   // secure cookies, SameSite=None
	DailySalt      string // seeds the daily card
}

// ConfigFromEnv reads Config from the environment with development defaults:
//
//	JWT_SECRET        dev_secret_change_me
//	JWT_EXPIRES_DAYS  14
//	COOKIE_NAME       walkbingo_token
//	CLIENT_ORIGIN     http://localhost:5173
//	APP_ENV           "production" enables secure cookies
//	DAILY_SALT        local_dev_salt
func ConfigFromEnv() Config {
	return Config{
		JWTSecret:      getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiresDays: getEnvInt("JWT_EXPIRES_DAYS", 14),
		CookieName:     getEnv("COOKIE_NAME", "walkbingo_token"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:     os.Getenv("APP_ENV") == "production",
		DailySalt:      getEnv("DAILY_SALT", "local_dev_salt"),
	}
}

// withDefaults fills zero fields so a partial Config still works.
func (c Config) withDefaults() Config {
	if c.JWTSecret == "" {
		c.JWTSecret = "dev_secret_change_me"
	}
	if c.JWTExpiresDays <= 0 {
		c.JWTExpiresDays = 14
	}
	if c.CookieName == "" {
		c.CookieName = "walkbingo_token"
	}
	if c.ClientOrigin == "" {
		c.ClientOrigin = "http://localhost:5173"
	}
	if c.DailySalt == "" {
		c.DailySalt = "local_dev_salt"
	}
	return c
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
