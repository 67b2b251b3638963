package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mizuleo/tstruct/internal/ui"
)

// checkCmd validates definition files.
func checkCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Validate definition files",
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

			client, err := newSchemaOnlyClient()
			if err != nil {
				return err
			}
			defer client.Close()

			type fileResult struct {
				File  string `json:"file"`
				Valid bool   `json:"valid"`
				Table string `json:"table,omitempty"`
				Error string `json:"error,omitempty"`
			}

			results := make([]fileResult, 0, len(files))
			failed := 0
			for _, file := range files {
				table, err := client.ParseFile(file)
				if err != nil {
					failed++
					results = append(results, fileResult{File: file, Valid: false, Error: err.Error()})
					if !jsonOutput {
						fmt.Println(ui.Error("✗") + " " + file)
						fmt.Print(ui.FormatError(err))
					}
					continue
				}
				results = append(results, fileResult{File: file, Valid: true, Table: table.Name})
				if !jsonOutput {
					fmt.Printf("%s %s (%s, %s)\n",
						ui.Success("✓"), file, table.Name,
						ui.FormatCount(len(table.Fields), "column", "columns"))
				}
			}

			if jsonOutput {
				outputJSON(map[string]any{
					"valid": failed == 0,
					"files": results,
				})
			} else if failed == 0 {
				content := ui.FormatCount(len(files), "file", "files") + " validated"
				fmt.Println(ui.RenderSuccessPanel("Check passed", content))
			} else {
				content := fmt.Sprintf("%d of %d files invalid", failed, len(files))
				fmt.Println(ui.RenderErrorPanel("Check failed", content))
			}

			if failed > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
