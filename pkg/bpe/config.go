// Package bpe holds the custom byte-pair encoding configuration threaded through preprocessing.
package bpe

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrIDMustBeSet = errors.New("custom bpe config id must be set")

// CustomConfig selects a custom set of bpe merges.
// It is opaque to the runner and only interpreted by the representation converter.
type CustomConfig struct {
	ID string `mapstructure:"id" json:"id"`
	// Merges is the number of merges applied, 0 meaning all merges of MergesFile.
	Merges          int    `mapstructure:"merges" json:"merges"`
	MergesFile      string `mapstructure:"merges_file" json:"merges_file,omitempty"`
	MergesCacheFile string `mapstructure:"merges_cache_file" json:"merges_cache_file,omitempty"`
}

// NewCustomConfig returns a config for id, nil when id is empty.
func NewCustomConfig(id string, merges int, mergesFile, mergesCacheFile string) (*CustomConfig, error) {
	if id == "" {
		if merges != 0 || mergesFile != "" {
			return nil, ErrIDMustBeSet
		}

		return nil, nil //nolint:nilnil // no custom config is a valid config
	}

	if merges < 0 {
		return nil, errors.Errorf("invalid number of merges %d", merges)
	}

	return &CustomConfig{
		ID:              id,
		Merges:          merges,
		MergesFile:      mergesFile,
		MergesCacheFile: mergesCacheFile,
	}, nil
}

// ReprID names the representation produced with cfg. A nil cfg is the default representation.
func (cfg *CustomConfig) ReprID() string {
	if cfg == nil {
		return "default"
	}

	if cfg.Merges > 0 {
		return fmt.Sprintf("bpe_%s_%d", cfg.ID, cfg.Merges)
	}

	return "bpe_" + cfg.ID
}
