package gen

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generators for marbus documentation",
	Long:  `Generators for marbus documentation`,
}

func init() {
	RootCmd.AddCommand(ManPagesCmd)
}
