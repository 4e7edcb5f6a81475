package modbisect

import (
	"github.com/arthur-debert/modbisect/pkg/errors"
	"github.com/arthur-debert/modbisect/pkg/filesystem"
	"github.com/arthur-debert/modbisect/pkg/logging"
	"github.com/arthur-debert/modbisect/pkg/paths"
	"github.com/arthur-debert/modbisect/pkg/recovery"
	"github.com/arthur-debert/modbisect/pkg/report"
	"github.com/spf13/cobra"
)

func newRecoverCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "recover [state-file]",
		Short:   MsgRecoverShort,
		Long:    MsgRecoverLong,
		Example: MsgRecoverExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.recover")

			overrides := map[string]interface{}{}
			if len(args) > 0 {
				overrides["state.file"] = args[0]
			}
			cfg, err := loadConfig(global, overrides)
			if err != nil {
				return err
			}
			statePath, err := paths.Absolute(cfg.State.File)
			if err != nil {
				return errors.Wrapf(err, errors.ErrInvalidInput, "invalid state file %q", cfg.State.File)
			}

			out := report.New(cmd.OutOrStdout(), formatFor(cmd.OutOrStdout(), cfg.PromptFormat()))

			result, recoverErr := recovery.New(filesystem.NewOS()).Recover(statePath)
			logger.Info().
				Str("state", statePath).
				Int("restored", result.Restored).
				Int("skipped", result.Skipped).
				Strs("failed", result.Failed).
				Msgf(MsgRestoredDetails, result.Skipped, len(result.Failed))
			if recoverErr != nil && errors.IsErrorCode(recoverErr, errors.ErrStateCorrupt) {
				return recoverErr
			}

			if err := out.Success(MsgRestored, result.Restored); err != nil {
				return err
			}
			return recoverErr
		},
	}
}
