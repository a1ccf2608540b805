// Package bench evaluates predicted diagrams against a corpus of gold diagrams.
package bench

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/go-recipediff/diagram"
)

// Pair is one recipe with its predicted and gold diagrams.
type Pair struct {
	ID        string           `yaml:"id"`
	Predicted diagram.Document `yaml:"predicted"`
	Gold      diagram.Document `yaml:"gold"`
}

// Build constructs both diagrams.
func (p *Pair) Build() (pred, gold *diagram.Diagram, err error) {
	pred, err = p.Predicted.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("predicted: %w", err)
	}
	gold, err = p.Gold.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("gold: %w", err)
	}
	return pred, gold, nil
}

// LoadPair reads a pair file. A missing id defaults to the file name
// without its extension.
func LoadPair(path string) (*Pair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var p Pair
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse pair: %w", err)
	}
	if p.ID == "" {
		base := filepath.Base(path)
		p.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return &p, nil
}

// LoadCorpus loads all .yaml and .yml pair files from a directory in name order.
func LoadCorpus(dir string) ([]*Pair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var pairs []*Pair
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext := filepath.Ext(entry.Name()); ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		pair, err := LoadPair(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		pairs = append(pairs, pair)
	}

	return pairs, nil
}

// LoadDocument reads a single diagram document.
func LoadDocument(path string) (diagram.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return diagram.Document{}, fmt.Errorf("read file: %w", err)
	}
	var doc diagram.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return diagram.Document{}, fmt.Errorf("parse diagram %s: %w", path, err)
	}
	return doc, nil
}
