package commands

import (
	"github.com/spf13/cobra"

	"crypto-conditions/internal/app"
)

var (
	configPath string
	wire       *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "condcli",
		Short: "Crypto-conditions inspection and signing CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			w, err := app.NewWire(app.Config{ConfigPath: configPath})
			if err != nil {
				return err
			}
			wire = w
			cmd.SilenceUsage = !wire.Defaults.Verbose
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to condclirc.yaml (default ~/.condclirc.yaml)")

	root.AddCommand(validateCmd(), deriveCmd(), describeCmd(), signCmd())
	return root.Execute()
}
