package task

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// defaultSeedStructures is the demo corpus loaded when no seed file is
// configured.
var defaultSeedStructures = []string{
	"CCO",
	"c1ccccc1",
	"C1CCCCC1",
	"CC(C)O",
	"C1=CC=C(C=C1)O",
	"CC(=O)O",
	"C1CCCNC1",
	"CC(C)(C)O",
	"c1ccc2ccccc2c1",
	"CC(=O)C",
}

// DefaultSeeds builds the built-in demo tasks, titled Mol-0001 onwards.
func DefaultSeeds() ([]*Task, error) {
	out := make([]*Task, 0, len(defaultSeedStructures))
	for i, smiles := range defaultSeedStructures {
		t, err := New(fmt.Sprintf("Mol-%04d", i+1), Source{SMILES: smiles})
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

type seedFile struct {
	Tasks []seedEntry `yaml:"tasks"`
}

type seedEntry struct {
	Title  string `yaml:"title"`
	SMILES string `yaml:"smiles"`
	Mol    string `yaml:"mol"`
}

// LoadSeeds reads a YAML seed file of the form:
//
//	tasks:
//	  - title: Mol-0001
//	    smiles: CCO
func LoadSeeds(path string) ([]*Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	out := make([]*Task, 0, len(file.Tasks))
	for i, entry := range file.Tasks {
		t, err := New(entry.Title, Source{SMILES: entry.SMILES, Mol: entry.Mol})
		if err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i+1, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// Seed stores the given tasks, typically at startup.
func Seed(ctx context.Context, store *Store, tasks []*Task) error {
	for _, t := range tasks {
		if err := store.Put(ctx, t); err != nil {
			return err
		}
	}
	return nil
}
