package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/supercuration/supercon/config"
	"github.com/supercuration/supercon/internal"
	"github.com/supercuration/supercon/pkg/summary"
)

var (
	log *logrus.Logger

	cfgFile      string
	showVersion  bool
	dumpConfig   bool
	exportFormat string
	outputPath   string
)

var cmd = &cobra.Command{
	Use:   "supercon",
	Short: "supercon reconciles superconductor annotations with their PDF and curates the extracted records",
	Run:   func(cmd *cobra.Command, args []string) { run() },
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Run:   func(cmd *cobra.Command, args []string) { run() },
}

var dumpJsonSchemaCmd = &cobra.Command{
	Use:     "json-schema",
	Short:   "Generates JSON Schema for supercon's configuration file",
	Example: "supercon json-schema > supercon_config_schema.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := config.JSONSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(schema))
		return nil
	},
}

var reconcileCmd = &cobra.Command{
	Use:     "reconcile <annotations.json>",
	Short:   "Build the summary table of a saved annotation response and export it",
	Example: "supercon reconcile annotations.json --format csv > export.csv",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reconcileFile(loadConfigOrDefault(), args[0])
	},
}

var fetchCmd = &cobra.Command{
	Use:     "fetch <hash>",
	Short:   "Fetch a processed document from the backend and export its summary table",
	Example: "supercon fetch 3f2a... --format rdf -o export.xml",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fetchDocument(cmd.Context(), loadConfigOrDefault(), args[0])
	},
}

func init() {
	cmd.AddCommand(serveCmd)
	cmd.AddCommand(dumpJsonSchemaCmd)
	cmd.AddCommand(reconcileCmd)
	cmd.AddCommand(fetchCmd)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default config.yaml)")
	cmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "print version number")
	cmd.PersistentFlags().BoolVarP(&dumpConfig, "dump-config", "d", false, "dump config")

	for _, c := range []*cobra.Command{reconcileCmd, fetchCmd} {
		c.Flags().
			StringVarP(&exportFormat, "format", "f", string(summary.FormatCSV), "export format: csv, rdf or tsv")
		c.Flags().StringVarP(&outputPath, "output", "o", "", "write the export to a file instead of stdout")
	}
}

// loadConfigOrDefault loads the configuration file when one is given and falls back to
// the defaults otherwise, so offline commands work without any setup.
func loadConfigOrDefault() *config.Config {
	if cfgFile == "" {
		if _, err := os.Stat("config.yaml"); err != nil {
			return config.Default()
		}
	}
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring supercon: %s", err)
	}
	config.SetLogLevel(cfg)
	return cfg
}

// Execute executes the root cobra command.
func Execute() {
	log = internal.GetLogger()
	log.SetLevel(logrus.InfoLevel)

	err := cmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
