package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile         string
	internalFlag    bool
	externalFlag    bool
	limitFlag       int
	outputFlag      string
	quietFlag       bool
	noSummarizeFlag bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docgen <source-dir>",
	Short: "Generate documentation for Python projects",
	Long: `docgen walks a source directory, extracts the functions, classes and
methods of every Python file and writes documentation for each one:

  name.md            public interface (external)
  name_internal.md   every declaration with its body (internal)
  name_diagram.mmd   class/method containment diagram

Summaries are requested from a text-completion backend (Ollama by default).
Set DOCGEN_MODEL to choose the model.

Examples:
  # Document a project into the current directory
  docgen ./myproject

  # Only the public interface, first 10 files, into docs/
  docgen ./myproject --external --limit 10 -o docs

  # Structure only, no summarization backend needed
  docgen ./myproject --no-summarize
`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("docgen {{.Version}}\n")

	rootCmd.Flags().StringVar(&cfgFile, "config", "config.json", "configuration file (json, yaml or toml)")
	rootCmd.Flags().BoolVar(&internalFlag, "internal", false, "Generate only internal documentation (and diagrams)")
	rootCmd.Flags().BoolVar(&externalFlag, "external", false, "Generate only external documentation")
	rootCmd.Flags().IntVar(&limitFlag, "limit", 0, "Limit the number of files to process (0 = no limit)")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output directory (default: config output_dir, else the working directory)")
	rootCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	rootCmd.Flags().BoolVar(&noSummarizeFlag, "no-summarize", false, "Skip summarization")
}

func runRoot(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Println("\nInterrupted! Cancelling documentation run...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// A missing .env is fine; anything else is worth a warning.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v\n", err)
	}

	if limitFlag < 0 {
		return fmt.Errorf("--limit must not be negative, got %d", limitFlag)
	}

	_, err := generate(ctx, options{
		SourceDir:   args[0],
		ConfigPath:  cfgFile,
		Internal:    internalFlag,
		External:    externalFlag,
		Limit:       limitFlag,
		OutputDir:   outputFlag,
		Quiet:       quietFlag,
		NoSummarize: noSummarizeFlag,
		Out:         cmd.OutOrStdout(),
	})
	return err
}
