// Package config loads the course configuration shared by the grading tools.
package config

import "strings"

type Config struct {
	Version string `yaml:"version"`
	Stream  string `yaml:"stream"`

	Tests struct {
		IgnorePackages []string `yaml:"ignore_packages"`
	} `yaml:"tests"`

	Diff struct {
		Original struct {
			Repo   string `yaml:"repo"`
			Branch string `yaml:"branch"`
		} `yaml:"original"`
		AllowList []string `yaml:"allow_list"`
	} `yaml:"diff"`
}

// IgnoredPackages returns tests.ignore_packages as a set, blank entries
// dropped.
func (c *Config) IgnoredPackages() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Tests.IgnorePackages))
	for _, p := range c.Tests.IgnorePackages {
		p = strings.TrimSpace(p)
		if p != "" {
			set[p] = struct{}{}
		}
	}
	return set
}
