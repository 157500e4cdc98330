package resolve

import (
	"fmt"
	"strings"
)

const (
	githubProviderNameConstant        = "github"
	githubHostConstant                = "github.com"
	githubRepositoryURLTemplate       = "https://github.com/%s/%s"
	githubBlobSuffixTemplateConstant  = "/blob/%s/%s"
	githubSingleLineTemplateConstant  = "#L%d"
	githubLineRangeTemplateConstant   = "#L%d-L%d"
	githubOriginSegmentCountConstant  = 2
)

// GitHubResolver renders github.com blob URLs.
type GitHubResolver struct{}

// Name identifies the provider.
func (GitHubResolver) Name() string {
	return githubProviderNameConstant
}

// Matches recognizes github.com hosts and the github/gh scheme aliases.
func (GitHubResolver) Matches(origin Origin) bool {
	switch origin.Scheme {
	case githubSchemeAliasConstant, githubShortSchemeAliasConstant:
		return true
	}
	return origin.Host == githubHostConstant
}

// Resolve renders https://github.com/{owner}/{repo}[/blob/{rev}/{path}[#L…]].
func (resolver GitHubResolver) Resolve(origin Origin, request ResolutionRequest) (string, error) {
	pathSegments := strings.Split(origin.Path, pathSeparatorConstant)
	if len(pathSegments) < githubOriginSegmentCountConstant {
		return "", MalformedOriginPathError{Provider: resolver.Name(), OriginPath: origin.Path}
	}

	resolvedURL := fmt.Sprintf(githubRepositoryURLTemplate, pathSegments[0], pathSegments[1])
	if len(request.RelativePath) == 0 {
		return resolvedURL, nil
	}

	resolvedURL += fmt.Sprintf(githubBlobSuffixTemplateConstant, request.Revision, request.RelativePath)
	if request.Lines.IsZero() {
		return resolvedURL, nil
	}
	if request.Lines.End == 0 {
		return resolvedURL + fmt.Sprintf(githubSingleLineTemplateConstant, request.Lines.Start), nil
	}
	return resolvedURL + fmt.Sprintf(githubLineRangeTemplateConstant, request.Lines.Start, request.Lines.End), nil
}
