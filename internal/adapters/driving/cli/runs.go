package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgtool/internal/adapters/driven/storage/sqlite"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage graphs stored in SQLite",
	Long: `Every 'kgtool build --sqlite DIR' stores the graph as a new run.
Use these commands to list or delete stored runs.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored graph runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete [run-id]",
	Short: "Delete a stored graph run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

func init() {
	runsCmd.PersistentFlags().String("sqlite", "", "SQLite database directory (default $KGTOOL_HOME/data)")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsDeleteCmd)
	rootCmd.AddCommand(runsCmd)
}

func openRunStore(cmd *cobra.Command) (*sqlite.Store, error) {
	dir, err := cmd.Flags().GetString("sqlite")
	if err != nil {
		return nil, fmt.Errorf("getting sqlite flag: %w", err)
	}
	return sqlite.NewStore(dir)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	db, err := openRunStore(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.GraphStore().Runs(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No stored runs.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(out, "%s  %s  nodes=%d edges=%d\n",
			styled(out, labelStyle, r.ID), r.CreatedAt.Local().Format(time.DateTime), r.Nodes, r.Edges)
	}
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	db, err := openRunStore(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.GraphStore().DeleteRun(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
	return nil
}
