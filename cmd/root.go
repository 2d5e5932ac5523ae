package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillpress/quillpress/cmd/users"
	"github.com/quillpress/quillpress/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "quillpress",
	Short: "Quillpress blog publishing backend",
	Long: `Quillpress is a blog publishing backend with stateless JWT
authentication. It serves articles, categories, tags, comments and likes
over a JSON HTTP API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(users.UsersCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
