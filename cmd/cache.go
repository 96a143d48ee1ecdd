package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yusuftas/PRGAVI/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Show the transcript cache location and size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Transcription.CachePath
		if cmd.Flags().Changed("cache") {
			path = cachePath
		}
		if path == "" {
			path = store.DefaultPath()
		}

		st, err := store.Open(path)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d transcripts\n", path, n)
		return nil
	},
}

func init() {
	cacheCmd.Flags().StringVar(&cachePath, "cache", "", "SQLite transcript cache path (default from config, then the user cache dir)")
	rootCmd.AddCommand(cacheCmd)
}
