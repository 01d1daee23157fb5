package main

import (
	"encoding/json"
	"os"

	"github.com/tbxark/eventagent/agent"
)

type Config struct {
	APIKey  string        `json:"api_key"`
	BaseURL string        `json:"base_url"`
	Model   string        `json:"model"`
	Agent   *agent.Config `json:"agent,omitempty"`
}

func loadConfig(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var conf Config
	if err := json.Unmarshal(file, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}
