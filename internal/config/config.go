package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	CMS      CMSConfig  `yaml:"cms"`
	Feed     FeedConfig `yaml:"feed"`
	LogLevel string     `yaml:"log_level"`
}

type CMSConfig struct {
	BaseURL     string            `yaml:"base_url"`
	Token       string            `yaml:"token"`
	PageSize    int               `yaml:"page_size"`
	Timeout     time.Duration     `yaml:"timeout"`
	Collections CollectionsConfig `yaml:"collections"`
}

type CollectionsConfig struct {
	Home        EndpointConfig `yaml:"home"`
	Courses     EndpointConfig `yaml:"courses"`
	CoursePages EndpointConfig `yaml:"course_pages"`
}

// EndpointConfig is one collection endpoint: its path under the CMS base URL
// and the nested-resource expansion query sent with every request.
type EndpointConfig struct {
	Path     string `yaml:"path"`
	Populate string `yaml:"populate"`
}

type FeedConfig struct {
	OutputPath  string `yaml:"output_path"`
	SiteBaseURL string `yaml:"site_base_url"`
	Brand       string `yaml:"brand"`
	// ExpectedImages is the reconciliation threshold for the fan-out image
	// count; zero disables the comparison.
	ExpectedImages int `yaml:"expected_images"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.CMS.BaseURL == "" {
		c.CMS.BaseURL = "https://cms-site.grupointegrado.br"
	}
	if c.CMS.PageSize == 0 {
		c.CMS.PageSize = 100
	}
	if c.CMS.Timeout == 0 {
		c.CMS.Timeout = 30 * time.Second
	}
	if c.CMS.Collections.Home.Path == "" {
		c.CMS.Collections.Home.Path = "/api/home"
	}
	if c.CMS.Collections.Home.Populate == "" {
		c.CMS.Collections.Home.Populate = "populate[banner][populate]=*"
	}
	if c.CMS.Collections.Courses.Path == "" {
		c.CMS.Collections.Courses.Path = "/api/cursos"
	}
	if c.CMS.Collections.Courses.Populate == "" {
		c.CMS.Collections.Courses.Populate = "populate=*"
	}
	if c.CMS.Collections.CoursePages.Path == "" {
		c.CMS.Collections.CoursePages.Path = "/api/curso-paginas"
	}
	if c.CMS.Collections.CoursePages.Populate == "" {
		c.CMS.Collections.CoursePages.Populate = "populate[imagem_meta_ads][populate][*]=*&populate[imagem_banner][populate][*]=*"
	}
	if c.Feed.OutputPath == "" {
		c.Feed.OutputPath = "meta_feed.csv"
	}
	if c.Feed.SiteBaseURL == "" {
		c.Feed.SiteBaseURL = "https://www.grupointegrado.br"
	}
	if c.Feed.Brand == "" {
		c.Feed.Brand = "Grupo Integrado"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
