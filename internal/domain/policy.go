package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultReserved lists the hosting panel directories that are never real domains
var DefaultReserved = []string{"", "sharedip", "default", "suspended"}

// Policy decides which domain directories are recorded and probed
type Policy struct {
	Reserved []string `yaml:"reserved"` // never recorded
	Skip     []string `yaml:"skip"`     // recorded without probing

	reserved map[string]bool
	skip     map[string]bool
}

// policyFile represents a YAML policy file
type policyFile struct {
	Reserved []string `yaml:"reserved"`
	Skip     []string `yaml:"skip"`
}

// DefaultPolicy returns the policy with only the built-in reserved names
func DefaultPolicy() *Policy {
	p := &Policy{}
	p.index()
	return p
}

// LoadPolicy loads a YAML policy file, or every *.yaml/*.yml file of a
// directory. An empty or missing path gives the default policy.
func LoadPolicy(path string) (*Policy, error) {
	p := &Policy{}
	if path == "" {
		p.index()
		return p, nil
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		p.index()
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat policy %s: %w", path, err)
	}

	if !info.IsDir() {
		if err := p.loadFile(path); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		p.index()
		return p, nil
	}

	err = filepath.Walk(path, func(file string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip directories and non-YAML files
		if info.IsDir() || (filepath.Ext(file) != ".yaml" && filepath.Ext(file) != ".yml") {
			return nil
		}

		if err := p.loadFile(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.index()
	return p, nil
}

// loadFile merges one YAML file into the policy
func (p *Policy) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var f policyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}

	p.Reserved = append(p.Reserved, f.Reserved...)
	p.Skip = append(p.Skip, f.Skip...)
	return nil
}

// index builds the lookup maps. Built-in reserved names match exactly;
// names from policy files match case-insensitively.
func (p *Policy) index() {
	p.reserved = make(map[string]bool)
	for _, name := range p.Reserved {
		p.reserved[strings.ToLower(strings.TrimSpace(name))] = true
	}

	p.skip = make(map[string]bool)
	for _, name := range p.Skip {
		p.skip[strings.ToLower(strings.TrimSpace(name))] = true
	}
}

// IsReserved reports whether a captured directory name is not a real domain
func (p *Policy) IsReserved(name string) bool {
	if p.reserved == nil {
		p.index()
	}
	for _, builtin := range DefaultReserved {
		if name == builtin {
			return true
		}
	}
	return p.reserved[strings.ToLower(name)]
}

// ShouldProbe reports whether the live site of a domain is sampled
func (p *Policy) ShouldProbe(name string) bool {
	if p.skip == nil {
		p.index()
	}
	return !p.skip[strings.ToLower(name)]
}
