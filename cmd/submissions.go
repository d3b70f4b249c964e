package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/craftburger/internal/contact"
)

var (
	submissionsState string
	submissionsLimit int
	pruneOlderThan   time.Duration
)

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "Inspect contact form outcomes",
	Long:  `Reports on the recorded outcomes of contact form submissions. Form contents are never stored.`,
}

var submissionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent submission outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeDB, err := openSubmissions()
		if err != nil {
			return err
		}
		defer closeDB()

		records, err := store.List(context.Background(), contact.QueryFilter{
			State: contact.State(submissionsState),
			Limit: submissionsLimit,
		})
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No submissions recorded.")
			return nil
		}
		for _, rec := range records {
			line := fmt.Sprintf("%s  %-7s  %s", rec.CreatedAt.Local().Format(time.DateTime), rec.State, rec.ID)
			if rec.HTTPStatus != 0 {
				line += fmt.Sprintf("  http=%d", rec.HTTPStatus)
			}
			if rec.Error != "" {
				line += "  " + rec.Error
			}
			fmt.Println(line)
		}
		return nil
	},
}

var submissionsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show submission totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeDB, err := openSubmissions()
		if err != nil {
			return err
		}
		defer closeDB()

		st, err := store.Stats(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Total:   %d\n", st.Total)
		fmt.Printf("Success: %d\n", st.Success)
		fmt.Printf("Error:   %d\n", st.Error)
		if st.Last != nil {
			fmt.Printf("Last:    %s\n", st.Last.Local().Format(time.DateTime))
		}
		return nil
	},
}

var submissionsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old submission outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if pruneOlderThan <= 0 {
			return fmt.Errorf("--older-than must be positive")
		}
		store, closeDB, err := openSubmissions()
		if err != nil {
			return err
		}
		defer closeDB()

		n, err := store.DeleteBefore(context.Background(), time.Now().Add(-pruneOlderThan))
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d record(s).\n", n)
		return nil
	},
}

func openSubmissions() (*contact.Store, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	database, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	return contact.NewStore(database), func() { database.Close() }, nil
}

func init() {
	submissionsListCmd.Flags().StringVar(&submissionsState, "state", "", "Filter by state (success or error)")
	submissionsListCmd.Flags().IntVar(&submissionsLimit, "limit", 20, "Maximum records to show")
	submissionsPruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 90*24*time.Hour, "Delete records older than this")
	submissionsCmd.AddCommand(submissionsListCmd, submissionsStatsCmd, submissionsPruneCmd)
	rootCmd.AddCommand(submissionsCmd)
}
