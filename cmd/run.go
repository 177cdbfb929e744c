package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/ziggy/internal/app"
	"github.com/abhisek/ziggy/internal/bank"
	"github.com/abhisek/ziggy/internal/screen"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	env := newEnv(rt)
	rt.log.WithField("bank_version", env.Bank.Version()).Info("starting ziggy")
	return app.Run(env)
}

func newEnv(rt *runtime) *screen.Env {
	return &screen.Env{
		Bank:            bank.Default(),
		Records:         rt.store.Records(),
		Events:          rt.store.Events(),
		Log:             rt.log,
		Session:         rt.cfg.SessionConfig(),
		DefaultSettings: rt.cfg.DefaultSettings(),
	}
}
