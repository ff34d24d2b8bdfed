package main

import (
	"fmt"

	"github.com/fwojciec/docindex"
)

// Run executes the check command. It fails when any reference dangles.
func (c *CheckCmd) Run(deps *Dependencies) error {
	idx, err := loadIndex(deps)
	if err != nil {
		return err
	}

	report := docindex.Resolve(idx)
	for _, d := range report.Dangling {
		fmt.Fprintln(deps.Stdout, d)
	}
	fmt.Fprintf(deps.Stdout, "%d of %d references resolved\n", report.Resolved, report.Total())

	if n := len(report.Dangling); n > 0 {
		return fmt.Errorf("%d dangling references", n)
	}
	return nil
}
