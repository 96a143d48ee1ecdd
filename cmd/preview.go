package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yusuftas/PRGAVI/internal/preview"
	"github.com/yusuftas/PRGAVI/internal/subtitle"
)

var previewCmd = &cobra.Command{
	Use:   "preview <captions.json>",
	Short: "Print the caption frames of an existing captions file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := subtitle.ReadJSONFile(args[0])
		if err != nil {
			return err
		}
		return preview.New(cmd.OutOrStdout(), &cfg.Captions).Render(doc.Timeline())
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
