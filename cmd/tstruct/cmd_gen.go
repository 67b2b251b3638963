package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/mizuleo/tstruct/internal/strutil"
	"github.com/mizuleo/tstruct/internal/ui"
	"github.com/mizuleo/tstruct/pkg/tstruct"
)

// genCmd generates Go struct files from definition files.
func genCmd() *cobra.Command {
	var (
		outDir  string
		pkgName string
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "gen [file...]",
		Short: "Generate Go structs from definition files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if outDir != "" {
				cfg.OutDir = outDir
			}
			if pkgName != "" {
				cfg.Package = pkgName
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

			if err := generateAll(client, cfg, files); err != nil {
				fmt.Fprint(os.Stderr, ui.FormatError(err))
				os.Exit(1)
			}

			if !watch {
				content := ui.FormatCount(len(files), "file", "files") + " generated into " + cfg.OutDir
				fmt.Println(ui.RenderSuccessPanel("Generation complete", content))
				return nil
			}

			return watchAndGenerate(client, cfg, files)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory for generated files")
	cmd.Flags().StringVarP(&pkgName, "package", "p", "", "Package name for generated files")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Regenerate when definition files change")

	return cmd
}

// generateAll parses every file and writes one Go source file per table
// into the output directory.
func generateAll(client *tstruct.Client, cfg *Config, files []string) error {
	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutDir, err)
	}

	for _, file := range files {
		table, err := client.ParseFile(file)
		if err != nil {
			return err
		}

		src, err := client.GenerateGo(table)
		if err != nil {
			return err
		}

		outPath := filepath.Join(cfg.OutDir, strutil.ToSnakeCase(table.Name)+".go")
		if err := os.WriteFile(outPath, src, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		fmt.Printf("%s %s -> %s\n", ui.Success("✓"), file, outPath)
	}
	return nil
}

// watchAndGenerate blocks, regenerating whenever a watched definition
// file changes. Watches are placed on directories because most editors
// replace files on save.
func watchAndGenerate(client *tstruct.Client, cfg *Config, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	fmt.Println(ui.Info("watching") + " " + ui.FormatCount(len(files), "file", "files") + " (ctrl-c to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if err := generateAll(client, cfg, []string{event.Name}); err != nil {
				// Keep watching: a half-saved file parses again on the
				// next write.
				fmt.Fprint(os.Stderr, ui.FormatError(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, ui.Error("watch error")+": "+strings.TrimSpace(err.Error()))
		}
	}
}
