package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Declarative, idempotent management of files under your home directory"
	MsgListShort       = "List installed and available packages"
	MsgListLong        = "List shows the packages recorded in the state file together with every package the manifests provide."
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgCompletionShort = "Generate shell completion script"

	// Version output
	MsgVersionFormat = "akabei version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrFormat     = "invalid output format: %w"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagInstall   = "Package to install or upgrade (repeatable, comma separated)"
	MsgFlagRemove    = "Package to remove (repeatable, comma separated)"
	MsgFlagApply     = "Apply the plan, mutating files and the state"
	MsgFlagDryRun    = "Preview changes without executing them (default)"
	MsgFlagManifests = "Directory searched for manifests (default: current directory)"
	MsgFlagState     = "State file (default: $XDG_DATA_HOME/akabei.json)"
	MsgFlagOutput    = "Output format: text, plain, terminal or json"
	MsgFlagConfig    = "Config file (default: $XDG_CONFIG_HOME/akabei/config.toml)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
