package ship

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// StoreDef describes one torpedo store fitted to a ship class.
type StoreDef struct {
	Capacity int `yaml:"capacity"`
}

// Class defines the static properties of a ship, loaded from YAML.
type Class struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Primary   StoreDef `yaml:"primary"`
	Secondary StoreDef `yaml:"secondary"`
}

// Validate checks that the Class satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (c *Class) Validate() error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if c.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if c.Primary.Capacity < 0 {
		errs = append(errs, fmt.Errorf("primary capacity must be >= 0, got %d", c.Primary.Capacity))
	}
	if c.Secondary.Capacity < 0 {
		errs = append(errs, fmt.Errorf("secondary capacity must be >= 0, got %d", c.Secondary.Capacity))
	}
	if len(errs) > 0 {
		return fmt.Errorf("ship class validation failed: %v", errs)
	}
	return nil
}

// LoadClasses reads all *.yaml files from dir, parses and validates each as a
// Class, and returns them sorted by ID.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid classes or the first encountered error.
func LoadClasses(dir string) ([]*Class, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadClasses: cannot read directory %q: %w", dir, err)
	}

	seen := make(map[string]string)
	var classes []*Class
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadClasses: cannot read file %q: %w", path, err)
		}
		var c Class
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("LoadClasses: cannot parse file %q: %w", path, err)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("LoadClasses: invalid class in %q: %w", path, err)
		}
		if prev, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("LoadClasses: duplicate class id %q in %q and %q", c.ID, prev, path)
		}
		seen[c.ID] = path
		classes = append(classes, &c)
	}

	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })
	return classes, nil
}

// FindClass returns the class with the given id.
//
// Postcondition: returns (class, true) if found, or (nil, false).
func FindClass(classes []*Class, id string) (*Class, bool) {
	for _, c := range classes {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}
