package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/ziggy/internal/config"
	"github.com/abhisek/ziggy/internal/logging"
	"github.com/abhisek/ziggy/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "ziggy",
	Short: "Offline practice tutor for kids",
	Long: `Ziggy is a terminal tutor that helps primary school children practise
numeracy, reading, grammar and writing through short timed missions.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ZIGGY_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ziggy.yaml in the user config dir)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}

// runtime holds what a command needs once configuration is loaded.
type runtime struct {
	cfg   *config.Config
	log   *logrus.Logger
	store *store.Store

	logCloser io.Closer
}

// loadConfig reads configuration with the --db flag taking precedence
// over the ZIGGY_DB environment variable and the config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.NewViper()
	if f := cmd.Flags().Lookup("db"); f != nil {
		if err := v.BindPFlag("db", f); err != nil {
			return nil, fmt.Errorf("bind --db: %w", err)
		}
	}
	file, _ := cmd.Flags().GetString("config")
	return config.Load(v, file)
}

// openRuntime loads configuration, opens the log and the store.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	log, closer, err := logging.New(cfg.Log, cfg.LogPath(dbPath))
	if err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.WithField("db", dbPath).Debug("store opened")

	return &runtime{cfg: cfg, log: log, store: st, logCloser: closer}, nil
}

func (r *runtime) Close() {
	if err := r.store.Close(); err != nil {
		r.log.WithError(err).Warn("close store")
	}
	r.logCloser.Close()
}
