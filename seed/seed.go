// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package seed provides the fixed candidate list a registry starts with,
// either the built-in ballot or one read from a YAML file.
package seed

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/printvote/models"
)

var ErrNoCandidates = errors.New("candidate list is empty")

// candidateFile is the on-disk layout:
//
//	candidates:
//	  - id: 1
//	    name: Alice Johnson
//	    party: Progressive Party
type candidateFile struct {
	Candidates []candidateEntry `yaml:"candidates"`
}

type candidateEntry struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Party string `yaml:"party"`
}

// DefaultCandidates returns the built-in ballot
func DefaultCandidates() []models.Candidate {
	return []models.Candidate{
		{ID: 1, Name: "Alice Johnson", Party: "Progressive Party"},
		{ID: 2, Name: "Bob Martinez", Party: "Unity Alliance"},
		{ID: 3, Name: "Carol Zhang", Party: "Future Forward"},
		{ID: 4, Name: "David Okonkwo", Party: "People's Choice"},
	}
}

// LoadCandidates reads a candidate list from a YAML file
func LoadCandidates(path string) ([]models.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates file: %w", err)
	}

	candidates, err := ParseCandidates(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return candidates, nil
}

// ParseCandidates decodes and validates a YAML candidate list.
// File order is kept; it breaks ties in the tally.
func ParseCandidates(data []byte) ([]models.Candidate, error) {
	var file candidateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse candidates: %w", err)
	}

	if len(file.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	seen := make(map[int]bool, len(file.Candidates))
	candidates := make([]models.Candidate, 0, len(file.Candidates))
	for i, entry := range file.Candidates {
		name := strings.TrimSpace(entry.Name)
		if entry.ID <= 0 {
			return nil, fmt.Errorf("candidate %d: id must be positive, got %d", i+1, entry.ID)
		}
		if name == "" {
			return nil, fmt.Errorf("candidate %d: name is required", entry.ID)
		}
		if seen[entry.ID] {
			return nil, fmt.Errorf("candidate %d: duplicate id", entry.ID)
		}
		seen[entry.ID] = true

		candidates = append(candidates, models.Candidate{
			ID:    entry.ID,
			Name:  name,
			Party: strings.TrimSpace(entry.Party),
		})
	}

	return candidates, nil
}
