package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mizuleo/tstruct/internal/ui"
)

// applyCmd creates the parsed tables in the configured database.
func applyCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply [file...]",
		Short: "Apply tables to the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			files, err := sourceFiles(args, cfg)
			if err != nil {
				if len(args) == 0 {
					printHelp("schemas_dir_not_found", cfg.SchemasDir)
					os.Exit(1)
				}
				return err
			}

			client, err := newClient()
			if err != nil {
				if handleClientError(err) {
					os.Exit(1)
				}
				return err
			}
			defer client.Close()

			applied := 0
			for _, file := range files {
				table, err := client.ParseFile(file)
				if err != nil {
					fmt.Fprint(os.Stderr, ui.FormatError(err))
					os.Exit(1)
				}

				if dryRun {
					fmt.Println(ui.Dim("-- " + file))
					fmt.Println(client.RenderSQL(table))
					continue
				}

				if err := client.Apply(context.Background(), table); err != nil {
					fmt.Fprint(os.Stderr, ui.FormatError(err))
					os.Exit(1)
				}
				fmt.Printf("%s %s (%s)\n", ui.Success("✓"), table.Name, file)
				applied++
			}

			if !dryRun {
				content := ui.FormatCount(applied, "table", "tables") + " created"
				fmt.Println(ui.RenderSuccessPanel("Apply complete", content))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry", false, "Print SQL without executing")

	return cmd
}
