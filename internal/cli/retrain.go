package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var retrainCmd = &cobra.Command{
	Use:   "retrain",
	Short: "Train a new model now and store it",
	Long: `Fits the model from the stored predictions, or from the built-in seed
examples when there are none, and saves it to the configured model store.
A running server picks the new model up on restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if err := a.InitModel(cmd.Context()); err != nil {
			return err
		}

		info, err := a.Engine.Retrain(cmd.Context())
		if err != nil {
			return fmt.Errorf("retrain: %w", err)
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Version", "Trained At", "Examples", "Source", "Labels"})
		table.SetBorder(true)
		table.SetRowLine(true)
		table.Append([]string{
			info.Version,
			info.TrainedAt.Format("2006-01-02 15:04:05"),
			strconv.Itoa(info.Examples),
			info.Source,
			strings.Join(info.Labels, ", "),
		})
		table.Render()
		return nil
	},
}
