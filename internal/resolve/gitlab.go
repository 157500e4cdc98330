package resolve

import (
	"fmt"
	"strings"
)

const (
	gitlabProviderNameConstant       = "gitlab"
	gitlabHostConstant               = "gitlab.com"
	gitlabHostPrefixConstant         = "gitlab."
	gitlabRepositoryURLTemplate      = "https://%s/%s"
	gitlabBlobSuffixTemplateConstant = "/-/blob/%s/%s"
	gitlabSingleLineTemplateConstant = "#L%d"
	gitlabLineRangeTemplateConstant  = "#L%d-%d"
)

// GitLabResolver renders GitLab blob URLs, preserving nested group paths.
type GitLabResolver struct{}

// Name identifies the provider.
func (GitLabResolver) Name() string {
	return gitlabProviderNameConstant
}

// Matches recognizes gitlab.com, self-hosted gitlab.* hosts, and the gitlab/gl scheme aliases.
func (GitLabResolver) Matches(origin Origin) bool {
	switch origin.Scheme {
	case gitlabSchemeAliasConstant, gitlabShortSchemeAliasConstant:
		return true
	}
	return origin.Host == gitlabHostConstant || strings.HasPrefix(origin.Host, gitlabHostPrefixConstant)
}

// Resolve renders https://{host}/{group…}/{repo}[/-/blob/{rev}/{path}[#L…]].
func (resolver GitLabResolver) Resolve(origin Origin, request ResolutionRequest) (string, error) {
	if len(origin.Path) == 0 || !strings.Contains(origin.Path, pathSeparatorConstant) {
		return "", MalformedOriginPathError{Provider: resolver.Name(), OriginPath: origin.Path}
	}

	providerHost := origin.Host
	if len(providerHost) == 0 {
		providerHost = gitlabHostConstant
	}

	resolvedURL := fmt.Sprintf(gitlabRepositoryURLTemplate, providerHost, origin.Path)
	if len(request.RelativePath) == 0 {
		return resolvedURL, nil
	}

	resolvedURL += fmt.Sprintf(gitlabBlobSuffixTemplateConstant, request.Revision, request.RelativePath)
	if request.Lines.IsZero() {
		return resolvedURL, nil
	}
	if request.Lines.End == 0 {
		return resolvedURL + fmt.Sprintf(gitlabSingleLineTemplateConstant, request.Lines.Start), nil
	}
	return resolvedURL + fmt.Sprintf(gitlabLineRangeTemplateConstant, request.Lines.Start, request.Lines.End), nil
}
