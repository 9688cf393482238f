package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/biomark"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.Links)
	if err != nil {
		return fmt.Errorf("failed to open links file: %w", err)
	}
	defer f.Close()

	links, err := biomark.ReadLinks(f)
	if err != nil {
		return fmt.Errorf("failed to read links file %q: %w", c.Links, err)
	}

	if len(links) == 0 {
		fmt.Fprintf(deps.Stdout, "No links found in %s\n", c.Links)
		return nil
	}

	res, err := deps.Driver.Run(deps.Ctx, links)
	if res != nil {
		fmt.Fprintf(deps.Stdout, "Processed %d links: %d saved, %d inserted, %d failed\n",
			res.Links, res.Saved, res.Inserted, res.Failed)
		if res.Duplicates > 0 {
			fmt.Fprintf(deps.Stdout, "Warning: %d duplicate links in %s\n", res.Duplicates, c.Links)
		}
	}
	return err
}
