package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mizuleo/tstruct/internal/ui"
	"github.com/mizuleo/tstruct/pkg/tstruct"
)

// sqlCmd renders the CREATE TABLE statement for a definition file.
func sqlCmd() *cobra.Command {
	var dialect string

	cmd := &cobra.Command{
		Use:   "sql <file>",
		Short: "Render CREATE TABLE SQL for a definition file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if dialect != "" {
				cfg.Dialect = dialect
			}

			client, err := tstruct.New(clientOptions(cfg)...)
			if err != nil {
				return err
			}
			defer client.Close()

			table, err := client.ParseFile(args[0])
			if err != nil {
				fmt.Fprint(os.Stderr, ui.FormatError(err))
				os.Exit(1)
			}

			fmt.Println(client.RenderSQL(table))
			return nil
		},
	}

	cmd.Flags().StringVar(&dialect, "dialect", "", "SQL dialect (postgres, sqlite)")

	return cmd
}
