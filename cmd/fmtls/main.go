package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/fmtls/config"
	"github.com/teranos/fmtls/errors"
	"github.com/teranos/fmtls/format/jsonfmt"
	"github.com/teranos/fmtls/logger"
	"github.com/teranos/fmtls/server"
	"github.com/teranos/fmtls/version"
)

var rootCmd = &cobra.Command{
	Use:   "fmtls",
	Short: "fmtls - JSON formatting language server",
	Long: `fmtls - A language server providing full-document JSON formatting.

The server speaks the Language Server Protocol over stdin/stdout. Point your
editor's LSP client at the fmtls binary; no arguments are required.

Exit status is 0 when the client requested shutdown before closing the
stream, 1 otherwise.`,
	SilenceUsage: true,
	RunE:         runServer,
}

var (
	serverConfigPath string
	serverJSONLogs   bool
	serverLogLevel   string
)

func init() {
	rootCmd.Flags().StringVar(&serverConfigPath, "config", "", "Path to config file (default: fmtls.toml in cwd or ~/.config/fmtls)")
	rootCmd.Flags().BoolVar(&serverJSONLogs, "json-logs", false, "Emit logs as JSON (logs always go to stderr)")
	rootCmd.Flags().StringVar(&serverLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(versionCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flags override config
	if cmd.Flags().Changed("json-logs") {
		cfg.Log.JSON = serverJSONLogs
	}
	if serverLogLevel != "" {
		cfg.Log.Level = serverLogLevel
	}

	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Level); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	defer logger.Cleanup()

	// The banner goes to stderr: stdout belongs to the protocol stream.
	if !cfg.Log.JSON {
		pterm.Info.WithWriter(os.Stderr).Printfln("fmtls %s listening on stdio", version.Get().Short())
	}

	formatter := jsonfmt.New(cfg.Format.Indent(), cfg.Format.SortKeys)
	clean := server.Serve(os.Stdin, os.Stdout, formatter, logger.Logger)
	if !clean {
		return errors.New("stream closed before shutdown was requested")
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if serverConfigPath != "" {
		return config.LoadFromFile(serverConfigPath)
	}
	return config.Load()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		pterm.Println(info.String())
		pterm.Printfln("  go:       %s", info.GoVersion)
		pterm.Printfln("  platform: %s", info.Platform)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
