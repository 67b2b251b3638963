// Package main provides the CLI for the tstruct schema tool.
// tstruct parses CREATE TABLE definition files into a schema model and
// turns that model into Go structs and SQL.
//
// Usage:
//
//	tstruct parse <file>         # Parse a definition file, show the model
//	tstruct check [file...]      # Validate definition files
//	tstruct gen [file...]        # Generate Go structs
//	tstruct sql <file>           # Render CREATE TABLE SQL
//	tstruct apply [file...]      # Apply tables to the database
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Database drivers
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

// Global flags
var (
	databaseURL string
	configFile  string
)

// customHelp displays a styled help message for the root command.
func customHelp(root *cobra.Command) {
	categories := []CommandCategory{
		{
			Title: "Parsing",
			Commands: []CommandInfo{
				{"parse", "Parse a definition file and show the schema model"},
				{"check", "Validate definition files"},
			},
		},
		{
			Title: "Output",
			Commands: []CommandInfo{
				{"gen", "Generate Go structs from definition files"},
				{"sql", "Render CREATE TABLE SQL for a definition file"},
			},
		},
		{
			Title: "Database",
			Commands: []CommandInfo{
				{"apply", "Apply tables to the configured database"},
			},
		},
	}

	renderCategoryHelp(
		"tstruct - Table Struct Generator",
		"One table definition: model, Go struct, SQL",
		categories,
		root,
	)
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "tstruct",
		Short:   "Table definition parser and code generator",
		Long:    `tstruct parses CREATE TABLE definition files into a schema model and generates Go structs and SQL from it.`,
		Version: version,
	}

	// Set custom help function
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		customHelp(rootCmd)
	})

	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&databaseURL, "database-url", "d", "", "Database connection URL")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "tstruct.yaml", "Path to config file")

	// Add subcommands
	rootCmd.AddCommand(
		parseCmd(),
		checkCmd(),
		genCmd(),
		sqlCmd(),
		applyCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
