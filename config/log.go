package config

import "os"

type LogConfig struct {
	LogLevel   string `json:"logLevel,omitempty"`
	LogHandler string `json:"logHandler,omitempty"`
}

func NewLogConfig() *LogConfig {
	c := &LogConfig{
		LogLevel:   "info",
		LogHandler: "text",
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_HANDLER"); v != "" {
		c.LogHandler = v
	}
	return c
}
