package config

import "time"

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-form-keeper",
			TokenDuration: 24 * time.Hour,
			ShareBaseURL:  "http://localhost:8080",
			Version:       "dev",
			LogLevel:      "info",
		},
		Storage: Storage{
			DB: DB{
				MaxOpenConns: 10,
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
	}
}
