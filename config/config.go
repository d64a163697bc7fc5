// Package config loads validation configuration files and merges them over
// the built-in defaults.
//
// Merging is key-wise, never deep: a file that sets a top-level field
// replaces that field only, and the severityOverrides and
// requiredTerminologySets maps merge per key, so a user naming one
// override key replaces only that key, not the whole map.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	dv "github.com/definexml/validator"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// File is the on-disk configuration shape. Pointer and nil-able fields
// distinguish "absent" from "set to zero" so merging stays key-wise.
type File struct {
	EnabledLayers           []string            `yaml:"enabledLayers" json:"enabledLayers"`
	RequiredTerminologySets map[string][]string `yaml:"requiredTerminologySets" json:"requiredTerminologySets"`
	SeverityOverrides       map[string]string   `yaml:"severityOverrides" json:"severityOverrides"`
	FindingCapPerCheck      *int                `yaml:"findingCapPerCheck" json:"findingCapPerCheck"`
	ParallelLayers          *bool               `yaml:"parallelLayers" json:"parallelLayers"`
}

// Load reads a configuration file, choosing the decoder by extension:
// .yaml/.yml use YAML, everything else uses JSON (the original tool's
// config format).
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return &f, nil
}

// Apply merges the file over the options, key-wise.
func (f *File) Apply(o *dv.Options) error {
	if f == nil {
		return nil
	}

	if f.EnabledLayers != nil {
		layers := make([]dv.LayerID, 0, len(f.EnabledLayers))
		for _, raw := range f.EnabledLayers {
			id, err := parseLayerID(raw)
			if err != nil {
				return err
			}
			layers = append(layers, id)
		}
		o.EnabledLayers = layers
	}

	for key, terms := range f.RequiredTerminologySets {
		if o.RequiredTerminologySets == nil {
			o.RequiredTerminologySets = make(map[string][]string)
		}
		o.RequiredTerminologySets[key] = terms
	}

	for code, raw := range f.SeverityOverrides {
		severity := dv.Severity(strings.ToUpper(raw))
		if !severity.Valid() {
			return fmt.Errorf("invalid severity %q for check %q", raw, code)
		}
		if o.SeverityOverrides == nil {
			o.SeverityOverrides = make(map[dv.CheckCode]dv.Severity)
		}
		o.SeverityOverrides[dv.CheckCode(code)] = severity
	}

	if f.FindingCapPerCheck != nil {
		if *f.FindingCapPerCheck <= 0 {
			return fmt.Errorf("findingCapPerCheck must be positive, got %d", *f.FindingCapPerCheck)
		}
		o.FindingCapPerCheck = *f.FindingCapPerCheck
	}

	if f.ParallelLayers != nil {
		o.ParallelLayers = *f.ParallelLayers
	}
	return nil
}

func parseLayerID(raw string) (dv.LayerID, error) {
	id := dv.LayerID(strings.ToLower(raw))
	for _, known := range dv.LayerOrder {
		if id == known {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown layer %q", raw)
}

// Resolve builds the effective options: defaults, then the optional config
// file, then programmatic options, in that order.
func Resolve(path string, opts ...dv.Option) (*dv.Options, error) {
	o := dv.DefaultOptions()

	if path != "" {
		f, err := Load(path)
		if err != nil {
			return nil, err
		}
		if err := f.Apply(o); err != nil {
			return nil, fmt.Errorf("apply config %s: %w", path, err)
		}
	}

	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}
