package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josevnz/rpmq/pkg/rpmq"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("rpmq v" + rpmq.Version)
	},
}
