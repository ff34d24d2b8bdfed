package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docindex"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Loader    docindex.CorpusLoader
	Builder   *docindex.Builder
	Snapshots docindex.SnapshotService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" default:"docindex.yaml" help:"Path to the YAML configuration file"`
	Dir     string `short:"d" help:"Corpus directory (overrides corpus.dir)"`
	DB      string `name:"db" help:"Snapshot database path (overrides db)"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Build     BuildCmd     `cmd:"" help:"Build the index, report dangling references and save a snapshot"`
	Entity    EntityCmd    `cmd:"" help:"Show an entity with its categories, locations and relations"`
	Mentions  MentionsCmd  `cmd:"" help:"List the sections that mention an entity"`
	Relations RelationsCmd `cmd:"" help:"List the targets of an entity's relation"`
	Show      ShowCmd      `cmd:"" help:"Print a section, or every section of a document"`
	Check     CheckCmd     `cmd:"" help:"Report dangling cross-references"`
	Snapshots SnapshotsCmd `cmd:"" help:"Manage saved index snapshots"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	NoSave bool `help:"Do not save a snapshot"`
}

// EntityCmd is the "entity" subcommand.
type EntityCmd struct {
	Name string `arg:"" help:"Entity name (case-insensitive)"`
}

// MentionsCmd is the "mentions" subcommand.
type MentionsCmd struct {
	Name string `arg:"" help:"Entity name (case-insensitive)"`
}

// RelationsCmd is the "relations" subcommand.
type RelationsCmd struct {
	Name     string `arg:"" help:"Entity name (case-insensitive)"`
	Relation string `arg:"" help:"Relation type, e.g. recommended_for, layer_above, built_on"`
	Reverse  bool   `short:"r" help:"List entities whose relation points at NAME instead"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Location string `arg:"" help:"Document slug, or slug#section"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct{}

// SnapshotsCmd groups the snapshot subcommands.
type SnapshotsCmd struct {
	List   SnapshotsListCmd   `cmd:"" default:"1" help:"List saved snapshots, newest first"`
	Show   SnapshotsShowCmd   `cmd:"" help:"Show the entities and dangling references of a snapshot"`
	Delete SnapshotsDeleteCmd `cmd:"" help:"Delete a snapshot"`
}

// SnapshotsListCmd is the "snapshots list" subcommand.
type SnapshotsListCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum number of snapshots to list"`
}

// SnapshotsShowCmd is the "snapshots show" subcommand.
type SnapshotsShowCmd struct {
	ID string `arg:"" help:"Snapshot ID"`
}

// SnapshotsDeleteCmd is the "snapshots delete" subcommand.
type SnapshotsDeleteCmd struct {
	ID string `arg:"" help:"Snapshot ID"`
}
