package resolve

import "strings"

// Configuration keys for the resolve command under the tools section.
const (
	OpenConfigurationKeyConstant      = "tools.resolve.open"
	CopyConfigurationKeyConstant      = "tools.resolve.copy"
	PermalinkConfigurationKeyConstant = "tools.resolve.permalink"
	RemoteConfigurationKeyConstant    = "tools.resolve.remote"
)

// CommandConfiguration captures configuration values for the resolve command.
type CommandConfiguration struct {
	OpenBrowser     bool   `mapstructure:"open"`
	CopyToClipboard bool   `mapstructure:"copy"`
	UsePermalink    bool   `mapstructure:"permalink"`
	RemoteName      string `mapstructure:"remote"`
}

// DefaultCommandConfiguration provides baseline configuration values for resolution.
// An empty remote name lets detection fall back to the per-system default remote.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		OpenBrowser:     true,
		CopyToClipboard: false,
		UsePermalink:    false,
		RemoteName:      "",
	}
}

// DefaultConfigurationValues exposes the baseline values keyed for the configuration loader.
func DefaultConfigurationValues() map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		OpenConfigurationKeyConstant:      defaults.OpenBrowser,
		CopyConfigurationKeyConstant:      defaults.CopyToClipboard,
		PermalinkConfigurationKeyConstant: defaults.UsePermalink,
		RemoteConfigurationKeyConstant:    defaults.RemoteName,
	}
}

// Sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)
	return sanitized
}
