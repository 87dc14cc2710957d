package core

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port         int    `yaml:"port"`
	StorageDir   string `yaml:"storageDir"`
	PublicDir    string `yaml:"publicDir"`
	PagesDir     string `yaml:"pagesDir"`
	OutputDir    string `yaml:"outputDir"`
	CacheEnabled bool   `yaml:"cache"`
	DebugHeaders bool   `yaml:"debugHeaders"`
	DebugLogs    bool   `yaml:"debugLogs"`
}

var LoadConfig = func(path string) Config {
	cfg := Config{
		Port:       8080,
		StorageDir: "post_data",
		PublicDir:  "public",
		PagesDir:   "pages",
		OutputDir:  "./cache",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return applyEnv(cfg)
	}

	yaml.Unmarshal(data, &cfg)

	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.StorageDir == "" {
		cfg.StorageDir = "post_data"
	}
	if cfg.PublicDir == "" {
		cfg.PublicDir = "public"
	}
	if cfg.PagesDir == "" {
		cfg.PagesDir = "pages"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./cache"
	}

	return applyEnv(cfg)
}

func applyEnv(cfg Config) Config {
	if port := os.Getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Port = n
		}
	}
	return cfg
}
