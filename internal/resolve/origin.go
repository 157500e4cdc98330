package resolve

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	schemeSeparatorConstant             = "://"
	gitSuffixConstant                   = ".git"
	pathSeparatorConstant               = "/"
	originParseErrorTemplateConstant    = "cannot parse origin %q: %s"
	unparsableURLReasonConstant         = "not a URL, scp-style remote, or local alias"
	missingHostReasonConstant           = "missing host"
	scpStyleOriginPatternConstant       = `^(?:(?P<user>[^@/]+)@)?(?P<host>[^:/]+):(?P<path>.*)$`
	scpUserGroupNameConstant            = "user"
	scpHostGroupNameConstant            = "host"
	scpPathGroupNameConstant            = "path"
)

var scpStyleOriginExpression = regexp.MustCompile(scpStyleOriginPatternConstant)

// Origin is a normalized remote URL broken into the parts provider matching needs.
type Origin struct {
	Scheme string
	User   string
	Host   string
	Path   string
}

// OriginParseError indicates a remote URL could not be normalized.
type OriginParseError struct {
	Input  string
	Reason string
}

// Error describes the rejected remote URL.
func (parseError OriginParseError) Error() string {
	return fmt.Sprintf(originParseErrorTemplateConstant, parseError.Input, parseError.Reason)
}

// ParseOrigin normalizes a configured remote URL. It accepts
// scheme://[user@]host[:port]/path URLs, scp-style user@host:path remotes,
// and provider scheme aliases such as github:owner/repo. The .git suffix and
// surrounding slashes are trimmed from the path.
func ParseOrigin(remoteURL string) (Origin, error) {
	trimmedRemoteURL := strings.TrimSpace(remoteURL)
	if len(trimmedRemoteURL) == 0 {
		return Origin{}, OriginParseError{Input: remoteURL, Reason: unparsableURLReasonConstant}
	}

	if strings.Contains(trimmedRemoteURL, schemeSeparatorConstant) {
		return parseSchemeOrigin(trimmedRemoteURL)
	}
	if scpMatch := scpStyleOriginExpression.FindStringSubmatch(trimmedRemoteURL); scpMatch != nil {
		return parseSCPOrigin(scpMatch), nil
	}
	return Origin{}, OriginParseError{Input: trimmedRemoteURL, Reason: unparsableURLReasonConstant}
}

func parseSchemeOrigin(remoteURL string) (Origin, error) {
	parsedURL, parseError := url.Parse(remoteURL)
	if parseError != nil {
		return Origin{}, OriginParseError{Input: remoteURL, Reason: parseError.Error()}
	}
	if len(parsedURL.Host) == 0 {
		return Origin{}, OriginParseError{Input: remoteURL, Reason: missingHostReasonConstant}
	}
	return Origin{
		Scheme: strings.ToLower(parsedURL.Scheme),
		User:   parsedURL.User.Username(),
		Host:   strings.ToLower(parsedURL.Hostname()),
		Path:   normalizeOriginPath(parsedURL.Path),
	}, nil
}

func parseSCPOrigin(scpMatch []string) Origin {
	matchedGroups := map[string]string{}
	for groupIndex, groupName := range scpStyleOriginExpression.SubexpNames() {
		if len(groupName) > 0 {
			matchedGroups[groupName] = scpMatch[groupIndex]
		}
	}

	hostComponent := matchedGroups[scpHostGroupNameConstant]
	userComponent := matchedGroups[scpUserGroupNameConstant]

	// Provider scheme aliases (github:owner/repo, kiln:repo) arrive in scp
	// shape with the alias in host position and no user.
	if len(userComponent) == 0 && isProviderSchemeAlias(hostComponent) {
		return Origin{
			Scheme: strings.ToLower(hostComponent),
			Path:   normalizeOriginPath(matchedGroups[scpPathGroupNameConstant]),
		}
	}

	return Origin{
		User: userComponent,
		Host: strings.ToLower(hostComponent),
		Path: normalizeOriginPath(matchedGroups[scpPathGroupNameConstant]),
	}
}

func normalizeOriginPath(originPath string) string {
	normalizedPath := strings.Trim(originPath, pathSeparatorConstant)
	normalizedPath = strings.TrimSuffix(normalizedPath, gitSuffixConstant)
	return strings.Trim(normalizedPath, pathSeparatorConstant)
}
