package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"votepulse/internal/models"
)

// Catalog is the fixed set of votable projects, loaded from a YAML file at
// startup. The API rejects any project key not listed here.
type Catalog struct {
	Projects []models.Project `yaml:"projects"`

	byKey map[string]models.Project
}

// Project keys become path segments in the store, so they are restricted to
// a store-safe charset up front.
var projectKeyRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// LoadCatalog loads the project catalog. A missing file yields a small
// built-in demo catalog so development works out of the box.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return devCatalog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(cat.Projects) == 0 {
		return nil, fmt.Errorf("catalog %s lists no projects", path)
	}
	if err := cat.index(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return &cat, nil
}

func devCatalog() *Catalog {
	cat := &Catalog{
		Projects: []models.Project{
			{Key: "dungeon", Name: "Dungeon Crawler"},
			{Key: "gallery", Name: "Photo Gallery"},
			{Key: "tracker", Name: "Habit Tracker"},
		},
	}
	// Built-in keys are known good.
	cat.index()
	return cat
}

func (c *Catalog) index() error {
	c.byKey = make(map[string]models.Project, len(c.Projects))
	for _, p := range c.Projects {
		if !projectKeyRe.MatchString(p.Key) {
			return fmt.Errorf("invalid project key %q", p.Key)
		}
		if _, dup := c.byKey[p.Key]; dup {
			return fmt.Errorf("duplicate project key %q", p.Key)
		}
		c.byKey[p.Key] = p
	}
	return nil
}

// Has reports whether key is a known project.
func (c *Catalog) Has(key string) bool {
	_, ok := c.byKey[key]
	return ok
}

// Keys returns all project keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.Projects))
	for _, p := range c.Projects {
		keys = append(keys, p.Key)
	}
	return keys
}
