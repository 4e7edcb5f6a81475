package modbisect

import (
	"fmt"

	"github.com/arthur-debert/modbisect/pkg/bisect"
	"github.com/arthur-debert/modbisect/pkg/config"
	"github.com/arthur-debert/modbisect/pkg/discovery"
	"github.com/arthur-debert/modbisect/pkg/errors"
	"github.com/arthur-debert/modbisect/pkg/filesystem"
	"github.com/arthur-debert/modbisect/pkg/folders"
	"github.com/arthur-debert/modbisect/pkg/lifecycle"
	"github.com/arthur-debert/modbisect/pkg/logging"
	"github.com/arthur-debert/modbisect/pkg/paths"
	"github.com/arthur-debert/modbisect/pkg/prompt"
	"github.com/arthur-debert/modbisect/pkg/recovery"
	"github.com/arthur-debert/modbisect/pkg/report"
	"github.com/arthur-debert/modbisect/pkg/state"
	"github.com/arthur-debert/modbisect/pkg/types"
	"github.com/arthur-debert/modbisect/pkg/ui"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

type runOptions struct {
	statePath string
	copy      bool
}

func newRunCmd(global *globalOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:     "run [mods-root]",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBisect(cmd, args, global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.statePath, "state", "s", "", MsgFlagState)
	cmd.Flags().BoolVar(&opts.copy, "copy", false, MsgFlagCopy)

	return cmd
}

// loadConfig applies the command's flags on top of the configuration sources.
func loadConfig(global *globalOptions, overrides map[string]interface{}) (*config.Config, error) {
	return config.Load(config.Options{
		File:      global.configFile,
		Overrides: overrides,
	})
}

func runBisect(cmd *cobra.Command, args []string, global *globalOptions, opts *runOptions) (err error) {
	logger := logging.GetLogger("cmd.run")

	overrides := map[string]interface{}{}
	if opts.statePath != "" {
		overrides["state.file"] = opts.statePath
	}
	if opts.copy {
		overrides["output.copy_result"] = true
	}
	cfg, err := loadConfig(global, overrides)
	if err != nil {
		return err
	}

	styled := formatFor(cmd.ErrOrStderr(), cfg.PromptFormat()) == ui.FormatStyled
	console := prompt.NewConsole(cmd.InOrStdin(), cmd.ErrOrStderr(), styled)
	out := report.New(cmd.OutOrStdout(), formatFor(cmd.OutOrStdout(), cfg.PromptFormat()))

	root, statePath, err := resolveTargets(cmd, args, opts, cfg, console)
	if err != nil {
		return err
	}

	fs := filesystem.NewOS()
	recoverer := recovery.New(fs)

	if err := recoverLeftover(fs, recoverer, statePath, out); err != nil {
		return err
	}

	session := bisect.NewSession(fs, statePath)
	logger.Info().Str("session", session.ID).Str("root", root).Str("state", statePath).Msg("Starting bisection")

	ctx, guard := lifecycle.New(cmd.Context(), func() error {
		result, cleanupErr := session.Cleanup(recoverer)
		logger.Info().
			Int("restored", result.Restored).
			Int("skipped", result.Skipped).
			Int("failed", len(result.Failed)).
			Msg("Folders restored")
		return cleanupErr
	})
	defer func() {
		if releaseErr := guard.Release(); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()

	controller := bisect.NewController(
		session,
		discovery.NewScanner(fs, cfg.Discovery.MarkerExtension),
		folders.NewManager(fs),
		console,
		out,
	)

	result, runErr := controller.Run(ctx, root)
	if runErr != nil {
		switch {
		case guard.Interrupted():
			return errors.Newf(errors.ErrInterrupted, MsgErrInterrupted, guard.Signal())
		case errors.IsErrorCode(runErr, errors.ErrAborted):
			logger.Info().Int("rounds", result.Rounds).Msg("Aborted by user")
			return out.Info(MsgAborted)
		default:
			return runErr
		}
	}

	return reportOutcome(out, result, root, cfg.Output.CopyResult)
}

// resolveTargets settles the mods root and state file, asking for them
// interactively when no root was given.
func resolveTargets(cmd *cobra.Command, args []string, opts *runOptions, cfg *config.Config, console *prompt.Console) (string, string, error) {
	statePath := cfg.State.File

	var root string
	if len(args) > 0 {
		root = args[0]
	} else {
		if !isInteractive(cmd.InOrStdin()) {
			return "", "", errors.New(errors.ErrInvalidInput, MsgErrNoRoot)
		}
		answer, err := console.AskLine(cmd.Context(), MsgAskRoot)
		if err != nil {
			return "", "", err
		}
		root = answer
		if opts.statePath == "" {
			answer, err := console.AskLine(cmd.Context(), fmt.Sprintf(MsgAskState, statePath))
			if err != nil {
				return "", "", err
			}
			if answer != "" {
				if statePath, err = paths.Absolute(answer); err != nil {
					return "", "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid state file %q", answer)
				}
			}
		}
	}

	if root == "" {
		return "", "", errors.New(errors.ErrInvalidInput, MsgErrNoRoot)
	}
	abs, err := paths.Absolute(root)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid mods folder %q", root)
	}
	if statePath == "" {
		return "", "", errors.New(errors.ErrInvalidInput, "a state file is required (--state)")
	}
	return abs, statePath, nil
}

// recoverLeftover restores what a previous, killed run left behind in
// statePath before a new run reuses the file.
func recoverLeftover(fs types.FS, recoverer *recovery.Recoverer, statePath string, out *report.Reporter) error {
	if !state.NewStore(fs).Exists(statePath) {
		return nil
	}
	logger := logging.GetLogger("cmd.run")
	logger.Warn().Str("state", statePath).Msg("Leftover state file found")

	if err := out.Warn(MsgLeftoverState, statePath); err != nil {
		return err
	}
	result, err := recoverer.Recover(statePath)
	if err != nil {
		return errors.Wrapf(err, errors.GetErrorCode(err), MsgErrLeftover, statePath)
	}
	return out.Info(MsgLeftoverDone, result.Restored)
}

func reportOutcome(out *report.Reporter, result bisect.Result, root string, copyResult bool) error {
	logger := logging.GetLogger("cmd.run")

	switch result.Outcome {
	case bisect.OutcomeNoMods:
		return out.Info(MsgNoMods, root)
	case bisect.OutcomeNoCandidates:
		return out.Info(MsgNoCandidates, root)
	case bisect.OutcomeUnconfirmed:
		return out.Warn(MsgUnconfirmed, result.CulpritPath)
	}

	if err := out.Culprit(result.CulpritPath); err != nil {
		return err
	}
	if copyResult {
		if err := writeClipboard(result.CulpritPath); err != nil {
			logger.Warn().Err(err).Msg("Clipboard unavailable")
			return out.Warn(MsgCopyFailed, err)
		}
		logger.Debug().Str("path", result.CulpritPath).Msg("Copied culprit to clipboard")
	}
	return nil
}
