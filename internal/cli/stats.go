package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show prediction statistics per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if err := a.InitClassification(cmd.Context()); err != nil {
			return err
		}

		stats, err := a.Services.Classification.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("stats: %w", err)
		}

		if stats.ModelVersion != "" {
			fmt.Printf("Model: %s", stats.ModelVersion)
			if stats.LastTrainedAt != nil {
				fmt.Printf(" (trained %s)", stats.LastTrainedAt.Format("2006-01-02 15:04:05"))
			}
			fmt.Println()
		}

		if stats.TotalPredictions == 0 {
			fmt.Println("No predictions yet.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Category", "Count", "Avg Probability"})
		table.SetBorder(true)
		table.SetRowLine(true)
		for _, c := range stats.Categories {
			table.Append([]string{c.Name, strconv.Itoa(c.Count), formatProbability(c.AverageProbability)})
		}
		table.SetFooter([]string{"Total", strconv.Itoa(stats.TotalPredictions), formatProbability(stats.AverageProbability)})
		table.Render()
		return nil
	},
}

func formatProbability(p float64) string {
	return strconv.FormatFloat(p, 'f', 4, 64)
}
