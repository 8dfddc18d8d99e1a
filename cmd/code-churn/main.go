package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

// rootCommand assembles the CLI surface.
func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "code-churn",
		Short: "Collect merge-request churn statistics from GitLab",
		Long: `code-churn lists every merge request of a GitLab project, fetches the
diff of each one and reports how many lines were added and removed per
file, as CSV or as a console table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(collectCommand())
	root.AddCommand(versionCommand())

	return root
}
