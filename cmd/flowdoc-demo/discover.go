package main

import (
	"fmt"

	"github.com/muesli/gitcha"
)

// discoverFixture finds the first document-JSON fixture under dir,
// the same directory-scan glow's own gitcha-backed file finder runs
// over a working copy before falling back to a single named file
// (SPEC_FULL.md DOMAIN STACK). It is used when --doc is given a
// directory instead of a file.
func discoverFixture(dir string) (string, error) {
	results, err := gitcha.FindFiles([]string{dir}, []string{"*.json"})
	if err != nil {
		return "", fmt.Errorf("searching %s for a document fixture: %w", dir, err)
	}
	for res := range results {
		return res.Path, nil
	}
	return "", fmt.Errorf("no .json document fixture found under %s", dir)
}
