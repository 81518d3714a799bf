package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// demoRaftConfig is the optional --config file for demo-raft, letting an
// operator pin node identity and addressing without a long flag line.
type demoRaftConfig struct {
	NodeID   string `yaml:"node_id"`
	BindAddr string `yaml:"bind_addr"`
	GroupID  uint64 `yaml:"group_id"`
}

func loadDemoRaftConfig(path string) (demoRaftConfig, error) {
	cfg := demoRaftConfig{NodeID: "node1", BindAddr: "127.0.0.1:18001", GroupID: 1}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
