package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docindex"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix marks environment variables that override configuration keys,
// e.g. DOCINDEX_CORPUS_DIR sets corpus.dir.
const envPrefix = "DOCINDEX_"

// Config holds the settings for building an index.
type Config struct {
	Corpus      CorpusConfig         `koanf:"corpus"`
	DB          string               `koanf:"db"`
	Concurrency int                  `koanf:"concurrency"`
	Code        bool                 `koanf:"code"`
	Vocabulary  []docindex.Term      `koanf:"vocabulary"`
	Tables      []docindex.TableRule `koanf:"tables"`
}

// CorpusConfig selects the documents that make up the corpus.
type CorpusConfig struct {
	Dir     string   `koanf:"dir"`
	Include []string `koanf:"include"`
	Exclude []string `koanf:"exclude"`
}

// LoadConfig reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error. Settings
// left unset fall back to DefaultConfig; a vocabulary or table list in the
// file replaces the default list entirely.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	def := DefaultConfig()
	if cfg.Corpus.Dir == "" {
		cfg.Corpus.Dir = def.Corpus.Dir
	}
	if cfg.DB == "" {
		cfg.DB = def.DB
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = def.Concurrency
	}
	if !k.Exists("vocabulary") {
		cfg.Vocabulary = def.Vocabulary
	}
	if !k.Exists("tables") {
		cfg.Tables = def.Tables
	}

	return cfg, nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Corpus.Dir == "" {
		return docindex.Errorf(docindex.EINVALID, "corpus.dir is required")
	}
	if c.Concurrency <= 0 {
		return docindex.Errorf(docindex.EINVALID, "concurrency must be positive")
	}
	for _, t := range c.Vocabulary {
		if !t.Category.Valid() {
			return docindex.Errorf(docindex.EINVALID, "vocabulary term %q has unknown category %q", t.Name, t.Category)
		}
	}
	for i := range c.Tables {
		if err := c.Tables[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Matcher compiles the vocabulary and table rules into a single matcher.
func (c *Config) Matcher() (docindex.Matcher, error) {
	vocab, err := docindex.NewVocabulary(c.Vocabulary)
	if err != nil {
		return nil, err
	}
	vocab.IncludeCode = c.Code

	m := docindex.Matchers{vocab}
	for _, rule := range c.Tables {
		m = append(m, rule)
	}
	return m, nil
}

// DefaultConfig returns the configuration used for the macOS architecture
// guides.
func DefaultConfig() *Config {
	return &Config{
		Corpus:      CorpusConfig{Dir: "."},
		DB:          defaultDBPath(),
		Concurrency: 4,
		Vocabulary:  defaultVocabulary(),
		Tables: []docindex.TableRule{
			{
				Subject:         "Recommended Frameworks",
				SubjectCategory: docindex.CategoryFramework,
				Object:          "App Type",
				ObjectCategory:  docindex.CategoryAppType,
				Relation:        docindex.RelationRecommendedFor,
			},
			{
				Subject:         "Framework",
				SubjectCategory: docindex.CategoryFramework,
				Object:          "Built On",
				ObjectCategory:  docindex.CategoryFramework,
				Relation:        docindex.RelationBuiltOn,
			},
			{
				Subject:         "Layer",
				SubjectCategory: docindex.CategoryLayer,
				Object:          "Above",
				ObjectCategory:  docindex.CategoryLayer,
				Relation:        docindex.RelationLayerAbove,
			},
		},
	}
}

func defaultVocabulary() []docindex.Term {
	var terms []docindex.Term
	add := func(c docindex.Category, names ...string) {
		for _, n := range names {
			name, aliases, _ := strings.Cut(n, "|")
			t := docindex.Term{Name: name, Category: c}
			if aliases != "" {
				t.Aliases = strings.Split(aliases, "|")
			}
			terms = append(terms, t)
		}
	}

	add(docindex.CategoryFramework,
		"AppKit", "SwiftUI", "Mac Catalyst|Catalyst", "Foundation", "Core Foundation|CoreFoundation",
		"Core Data|CoreData", "Core Animation|CoreAnimation", "Core Graphics|CoreGraphics|Quartz 2D",
		"Core Image|CoreImage", "Core Text|CoreText", "Metal", "MetalKit", "SpriteKit", "SceneKit",
		"RealityKit", "GameKit", "AVFoundation", "Core Audio|CoreAudio", "Core ML|CoreML", "WebKit",
		"Combine", "CloudKit", "StoreKit", "XPC", "Grand Central Dispatch|GCD|libdispatch",
		"Security framework", "Network Extension|NetworkExtension", "Endpoint Security|EndpointSecurity",
		"IOKit", "DriverKit", "System Extensions|SystemExtensions",
	)
	add(docindex.CategoryAppType,
		"Game", "Productivity", "Utility", "Media app|media application", "Document-based app|document-based",
		"Menu bar app|menu bar extra", "Pro app|professional app", "Command-line tool|CLI tool",
		"Launch daemon|daemon", "Launch agent|login item",
	)
	add(docindex.CategoryLayer,
		"Cocoa|Cocoa layer|application layer", "Media layer", "Core Services",
		"Core OS", "Kernel|Darwin|XNU",
	)
	return terms
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "docindex.db"
	}
	return filepath.Join(home, ".docindex", "docindex.db")
}
