// Command contactctl inspects and prepares the contact store configured for
// the server.
//
//	contactctl init    create the file, table or key the server writes to
//	contactctl list    print every stored submission as JSON, newest first
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/contactdesk/backend/internal/config"
	"github.com/contactdesk/backend/internal/logging"
	"github.com/contactdesk/backend/internal/repository"
	"github.com/spf13/cobra"
)

type options struct {
	backend  string
	dataFile string
	timeout  time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "contactctl",
		Short:        "Manage the contact form store",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.backend, "backend", "", "Store backend: file, postgres or redis (default: STORE_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&opts.dataFile, "data-file", "", "JSON file for the file backend (default: DATA_FILE)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Overall operation timeout")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the backing file, table or key if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every stored submission, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	})
	return rootCmd
}

// loadConfig resolves the server configuration and applies flag overrides.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Resolve()
	if err != nil {
		return nil, err
	}
	if opts.backend != "" {
		cfg.StoreBackend = strings.ToLower(strings.TrimSpace(opts.backend))
	}
	if opts.dataFile != "" {
		cfg.DataFile = opts.dataFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// Logs go to stderr so list output stays machine-readable.
	slog.SetDefault(logging.New(os.Stderr, cfg.LogLevel, "text"))
	return cfg, nil
}

func openStore(cmd *cobra.Command, opts *options) (repository.ContactStore, *config.Config, context.CancelFunc, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, nil, err
	}
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, opts.timeout)
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		cancel()
		return nil, nil, nil, fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}
	cmd.SetContext(ctx)
	return store, cfg, cancel, nil
}

func runInit(cmd *cobra.Command, opts *options) error {
	store, cfg, cancel, err := openStore(cmd, opts)
	if err != nil {
		return err
	}
	defer cancel()
	defer store.Close()

	target := cfg.StoreBackend
	if d, ok := store.(repository.Describer); ok {
		target = fmt.Sprintf("%s (%s)", d.Describe().Backend, d.Describe().Project)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", target)
	return nil
}

func runList(cmd *cobra.Command, opts *options) error {
	store, _, cancel, err := openStore(cmd, opts)
	if err != nil {
		return err
	}
	defer cancel()
	defer store.Close()

	records, err := store.ListAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("list contacts: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if len(records) == 0 {
		return enc.Encode([]any{})
	}
	return enc.Encode(records)
}
