package config

import "os"

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

func Port() string {
	if port := os.Getenv("APP_PORT"); port != "" {
		return port
	}
	return "8080"
}
