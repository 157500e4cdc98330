package resolve

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitlink/internal/browse"
	"github.com/temirov/gitlink/internal/clipboard"
	"github.com/temirov/gitlink/internal/execshell"
	"github.com/temirov/gitlink/internal/gitrepo"
	"github.com/temirov/gitlink/internal/hgrepo"
	"github.com/temirov/gitlink/internal/ui"
	"github.com/temirov/gitlink/internal/vcs"
)

const (
	commandUseConstant              = "resolve [path]"
	commandShortDescriptionConstant = "Resolve a local path into its web URL on the hosting provider"
	commandLongDescriptionConstant  = "resolve maps a path (optionally suffixed with :line or :start,end) inside a Git or Mercurial working copy onto the matching file URL of its hosting provider, prints the URL, and optionally opens it in a browser or copies it to the clipboard."
	flagOpenNameConstant            = "open"
	flagOpenDescriptionConstant     = "Open the resolved URL in the default browser"
	flagCopyNameConstant            = "copy"
	flagCopyDescriptionConstant     = "Copy the resolved URL to the system clipboard"
	flagPermalinkNameConstant       = "permalink"
	flagPermalinkDescription        = "Use the commit hash instead of the branch name as the URL revision"
	flagRemoteNameConstant          = "remote"
	flagRemoteDescriptionConstant   = "Remote name (Git) or path alias (Mercurial) supplying the origin URL"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the resolve command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() CommandConfiguration
	HumanReadableLoggingProvider func() bool
	Detector                     WorkingCopyDetector
	BrowserOpener                BrowserOpener
	ClipboardCopier              ClipboardCopier
	Output                       io.Writer
}

// Build constructs the resolve command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().Bool(flagOpenNameConstant, defaults.OpenBrowser, flagOpenDescriptionConstant)
	command.Flags().Bool(flagCopyNameConstant, defaults.CopyToClipboard, flagCopyDescriptionConstant)
	command.Flags().Bool(flagPermalinkNameConstant, defaults.UsePermalink, flagPermalinkDescription)
	command.Flags().String(flagRemoteNameConstant, defaults.RemoteName, flagRemoteDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	detector, detectorError := builder.resolveDetector(logger)
	if detectorError != nil {
		return detectorError
	}

	output := builder.Output
	if output == nil {
		output = command.OutOrStdout()
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger:          logger,
		Detector:        detector,
		BrowserOpener:   builder.resolveBrowserOpener(),
		ClipboardCopier: builder.resolveClipboardCopier(),
		Output:          output,
	})
	if serviceError != nil {
		return serviceError
	}

	_, resolutionError := service.Resolve(command.Context(), options)
	return resolutionError
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (ResolutionOptions, error) {
	configuration := builder.resolveConfiguration()

	options := ResolutionOptions{
		OpenBrowser:     configuration.OpenBrowser,
		CopyToClipboard: configuration.CopyToClipboard,
		UsePermalink:    configuration.UsePermalink,
		RemoteName:      configuration.RemoteName,
	}
	if len(arguments) > 0 {
		options.PathArgument = arguments[0]
	}

	if command.Flags().Changed(flagOpenNameConstant) {
		openValue, openFlagError := command.Flags().GetBool(flagOpenNameConstant)
		if openFlagError != nil {
			return ResolutionOptions{}, openFlagError
		}
		options.OpenBrowser = openValue
	}
	if command.Flags().Changed(flagCopyNameConstant) {
		copyValue, copyFlagError := command.Flags().GetBool(flagCopyNameConstant)
		if copyFlagError != nil {
			return ResolutionOptions{}, copyFlagError
		}
		options.CopyToClipboard = copyValue
	}
	if command.Flags().Changed(flagPermalinkNameConstant) {
		permalinkValue, permalinkFlagError := command.Flags().GetBool(flagPermalinkNameConstant)
		if permalinkFlagError != nil {
			return ResolutionOptions{}, permalinkFlagError
		}
		options.UsePermalink = permalinkValue
	}
	if command.Flags().Changed(flagRemoteNameConstant) {
		remoteValue, remoteFlagError := command.Flags().GetString(flagRemoteNameConstant)
		if remoteFlagError != nil {
			return ResolutionOptions{}, remoteFlagError
		}
		options.RemoteName = remoteValue
	}

	return options, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveDetector(logger *zap.Logger) (WorkingCopyDetector, error) {
	if builder.Detector != nil {
		return builder.Detector, nil
	}

	executorLogger := logger
	var observer execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		// The console observer narrates commands on its own; the executor's
		// structured log would duplicate every line.
		observer = ui.NewConsoleCommandEventLogger(logger)
		executorLogger = zap.NewNop()
	}

	shellExecutor, executorError := execshell.NewShellExecutorWithObserver(executorLogger, execshell.NewOSCommandRunner(), observer)
	if executorError != nil {
		return nil, executorError
	}

	gitManager, gitManagerError := gitrepo.NewRepositoryManager(shellExecutor)
	if gitManagerError != nil {
		return nil, gitManagerError
	}
	mercurialManager, mercurialManagerError := hgrepo.NewRepositoryManager(shellExecutor)
	if mercurialManagerError != nil {
		return nil, mercurialManagerError
	}
	return vcs.NewDetector(gitManager, mercurialManager)
}

func (builder *CommandBuilder) resolveBrowserOpener() BrowserOpener {
	if builder.BrowserOpener != nil {
		return builder.BrowserOpener
	}
	return browse.NewSystemOpener()
}

func (builder *CommandBuilder) resolveClipboardCopier() ClipboardCopier {
	if builder.ClipboardCopier != nil {
		return builder.ClipboardCopier
	}
	return clipboard.NewSystemCopier()
}
