package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/breathe/pkg/config"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Show or change settings",
		GroupID: gAdvanced,
		Long: `Show or change settings.

Settings are stored as JSON in the file given by --config. Missing keys fall
back to their defaults.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				conf, err := loadConfig()
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				raw, err := config.NewRawFileConfigFromConfig(conf)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(raw)
			},
		},
		&cobra.Command{
			Use:   "set KEY VALUE",
			Short: "Change one setting",
			Long: fmt.Sprintf(`Change one setting and save it.

Available keys: %s`, strings.Join(config.Keys(), ", ")),
			Args: cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				conf, err := loadConfig()
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				if err := config.Set(conf, args[0], args[1]); err != nil {
					return err
				}
				if err := conf.Save(); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
				logrus.Infof("successfully set %s to %s", args[0], args[1])
				return nil
			},
		},
	)

	return cmd
}
