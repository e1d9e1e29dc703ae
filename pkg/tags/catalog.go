// Package tags loads the optional code-aware tag catalog. Each tag
// maps a user-facing label to the files it covers and the keywords
// that hint at it, so reports can be routed to the right code.
package tags

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tag describes one catalog entry
type Tag struct {
	ID          string   `yaml:"id" json:"id"`
	Label       string   `yaml:"label" json:"label"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Files       []string `yaml:"files,omitempty" json:"files,omitempty"`
	Keywords    []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
}

// Catalog is the full tag catalog, split into primary user-facing
// feature tags and secondary technical tags
type Catalog struct {
	MainTags      []Tag `yaml:"main_tags"`
	SecondaryTags []Tag `yaml:"secondary_tags,omitempty"`
}

// Load reads a catalog from a YAML file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tag catalog %s: %w", path, err)
	}

	catalog := &Catalog{}
	if err := yaml.Unmarshal(data, catalog); err != nil {
		return nil, fmt.Errorf("failed to parse tag catalog %s: %w", path, err)
	}

	if err := catalog.validate(); err != nil {
		return nil, fmt.Errorf("invalid tag catalog %s: %w", path, err)
	}

	return catalog, nil
}

func (c *Catalog) validate() error {
	seen := map[string]bool{}
	for _, tag := range c.All() {
		if tag.ID == "" {
			return fmt.Errorf("tag with empty id (label %q)", tag.Label)
		}
		if seen[tag.ID] {
			return fmt.Errorf("duplicate tag id %q", tag.ID)
		}
		seen[tag.ID] = true
	}
	return nil
}

// All returns every tag, main tags first
func (c *Catalog) All() []Tag {
	all := make([]Tag, 0, len(c.MainTags)+len(c.SecondaryTags))
	all = append(all, c.MainTags...)
	all = append(all, c.SecondaryTags...)
	return all
}

// Find looks a tag up by id
func (c *Catalog) Find(id string) (Tag, bool) {
	for _, tag := range c.All() {
		if tag.ID == id {
			return tag, true
		}
	}
	return Tag{}, false
}

// Suggest ranks tags by the number of keyword hits in the given text
// and returns up to limit matches, best first. Ties break on catalog
// order so suggestions are stable.
func (c *Catalog) Suggest(text string, limit int) []Tag {
	if limit <= 0 {
		return nil
	}

	lowered := strings.ToLower(text)

	type scored struct {
		tag   Tag
		hits  int
		index int
	}

	candidates := []scored{}
	for i, tag := range c.All() {
		hits := 0
		for _, keyword := range tag.Keywords {
			if keyword != "" && strings.Contains(lowered, strings.ToLower(keyword)) {
				hits++
			}
		}
		if hits > 0 {
			candidates = append(candidates, scored{tag: tag, hits: hits, index: i})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].hits != candidates[j].hits {
			return candidates[i].hits > candidates[j].hits
		}
		return candidates[i].index < candidates[j].index
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	result := make([]Tag, len(candidates))
	for i, c := range candidates {
		result[i] = c.tag
	}
	return result
}
