package modbisect

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Find the mod that breaks things, by binary search"
	MsgRunShort       = "Bisect the mods under a folder"
	MsgRecoverShort   = "Restore folders left disabled by an interrupted run"
	MsgGenConfigShort = "Print the default configuration"
	MsgVersionShort   = "Print version information"

	// Prompts
	MsgAskRoot  = "Mods folder:"
	MsgAskState = "State file [%s]:"

	// Status messages
	MsgNoMods          = "No mods found under %s."
	MsgNoCandidates    = "No enabled mods to search: every mod under %s is already disabled."
	MsgUnconfirmed     = "The search ended on %s but the folder no longer exists; the result could not be confirmed."
	MsgAborted         = "Search aborted; restoring folders."
	MsgLeftoverState   = "Found state from a previous run at %s; restoring it first."
	MsgLeftoverDone    = "Restored %d folder(s) left by a previous run."
	MsgRestored        = "restored %d entries"
	MsgRestoredDetails = "skipped %d, failed %d"
	MsgCopyFailed      = "Could not copy to clipboard: %v"
	MsgVersionFormat   = "modbisect version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoRoot      = "a mods folder is required (pass it as an argument)"
	MsgErrInterrupted = "interrupted by %s; folders were restored"
	MsgErrLeftover    = "cannot restore the previous run's state file %s"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Config file (default $XDG_CONFIG_HOME/modbisect/config.toml)"
	MsgFlagState   = "State file recording the folders this run disables"
	MsgFlagCopy    = "Copy the culprit's path to the clipboard"
	MsgFlagFormat  = "Output format: toml or yaml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/recover-long.txt
	msgRecoverLongRaw string
	MsgRecoverLong    = strings.TrimSpace(msgRecoverLongRaw)

	//go:embed msgs/recover-example.txt
	msgRecoverExampleRaw string
	MsgRecoverExample    = strings.TrimRight(msgRecoverExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
