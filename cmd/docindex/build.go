package main

import (
	"fmt"

	"github.com/fwojciec/docindex"
)

// loadIndex loads the corpus and builds the index. Documents that fail to
// load are reported as warnings and left out.
func loadIndex(deps *Dependencies) (*docindex.Index, error) {
	result, err := deps.Loader.LoadCorpus(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return nil, err
	}
	for _, f := range result.Failures {
		fmt.Fprintf(deps.Stderr, "warning: skipped %s\n", f.Error())
	}

	idx, err := deps.Builder.Build(result.Documents)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return nil, err
	}
	return idx, nil
}

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	idx, err := loadIndex(deps)
	if err != nil {
		return err
	}
	report := docindex.Resolve(idx)

	fmt.Fprintf(deps.Stdout, "Indexed %d documents, %d entities (fingerprint %s)\n",
		len(idx.Documents()), idx.Len(), idx.Fingerprint())
	fmt.Fprintf(deps.Stdout, "References: %d resolved, %d dangling\n", report.Resolved, len(report.Dangling))
	for _, d := range report.Dangling {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", d)
	}

	if c.NoSave || deps.Snapshots == nil {
		return nil
	}
	snap, err := deps.Snapshots.SaveSnapshot(deps.Ctx, idx, report)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Saved snapshot %s\n", snap.ID)
	return nil
}
