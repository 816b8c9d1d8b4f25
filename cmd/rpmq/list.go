// Plain listing, the default command output.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josevnz/rpmq/pkg/types"
)

// runList prints one "name-version: size" row per package, or a JSON array
// with --json.
func runList(cmd *cobra.Command, args []string) error {
	q, err := openQuery()
	if err != nil {
		return err
	}
	defer q.Close()

	if flagJSON {
		var pkgs []types.Package
		for pkg, err := range q.Records() {
			if err != nil {
				return err
			}
			pkgs = append(pkgs, pkg)
		}
		output, err := json.MarshalIndent(pkgs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal packages: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	for pkg, err := range q.Records() {
		if err != nil {
			return err
		}
		fmt.Println(formatRow(pkg))
	}
	return nil
}
