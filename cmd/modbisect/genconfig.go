package modbisect

import (
	"github.com/arthur-debert/modbisect/pkg/config"
	"github.com/spf13/cobra"
)

func newGenConfigCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Defaults()
			if err != nil {
				return err
			}
			content, err := config.Generate(cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(content)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", config.FormatTOML, MsgFlagFormat)
	return cmd
}
