package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/docindex"
)

// Run executes the snapshots list command.
func (c *SnapshotsListCmd) Run(deps *Dependencies) error {
	snaps, err := deps.Snapshots.FindSnapshots(deps.Ctx, docindex.SnapshotFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	if len(snaps) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Use 'docindex build' to create one.")
		return nil
	}

	for _, s := range snaps {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  docs=%d entities=%d dangling=%d\n",
			s.ID, s.CreatedAt.Format(time.RFC3339), s.Fingerprint, s.Documents, s.Entities, s.Dangling)
	}
	return nil
}

// Run executes the snapshots show command.
func (c *SnapshotsShowCmd) Run(deps *Dependencies) error {
	snap, err := deps.Snapshots.FindSnapshotByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}
	entities, err := deps.Snapshots.FindSnapshotEntities(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}
	dangling, err := deps.Snapshots.FindSnapshotDangling(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Snapshot %s (%s)\n", snap.ID, snap.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(deps.Stdout, "Fingerprint: %s\n", snap.Fingerprint)
	fmt.Fprintf(deps.Stdout, "Entities (%d):\n", len(entities))
	for _, e := range entities {
		fmt.Fprintf(deps.Stdout, "  %s [%s] %d locations, %d relations\n",
			e.Name, formatCategories(e.Categories), len(e.Locations), len(e.Relations))
	}
	if len(dangling) > 0 {
		fmt.Fprintf(deps.Stdout, "Dangling references (%d):\n", len(dangling))
		for _, d := range dangling {
			fmt.Fprintf(deps.Stdout, "  %s\n", d)
		}
	}
	return nil
}

// Run executes the snapshots delete command.
func (c *SnapshotsDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Snapshots.DeleteSnapshot(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted snapshot %s\n", c.ID)
	return nil
}
