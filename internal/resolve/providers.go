package resolve

import (
	"fmt"
	"strings"
)

const (
	unsupportedProviderErrorTemplateConstant = "no hosting provider recognizes origin %q"
	malformedOriginPathTemplateConstant      = "%s origin path %q does not identify a repository"
	originDisplayTemplateConstant            = "%s%s/%s"
	originUserDisplayTemplateConstant        = "%s@"

	githubSchemeAliasConstant        = "github"
	githubShortSchemeAliasConstant   = "gh"
	gitlabSchemeAliasConstant        = "gitlab"
	gitlabShortSchemeAliasConstant   = "gl"
	bitbucketSchemeAliasConstant     = "bitbucket"
	bitbucketShortSchemeAlias        = "bb"
	kilnSchemeAliasConstant          = "kiln"
	tfsSchemeAliasConstant           = "tfs"
)

var providerSchemeAliases = map[string]struct{}{
	githubSchemeAliasConstant:      {},
	githubShortSchemeAliasConstant: {},
	gitlabSchemeAliasConstant:      {},
	gitlabShortSchemeAliasConstant: {},
	bitbucketSchemeAliasConstant:   {},
	bitbucketShortSchemeAlias:      {},
	kilnSchemeAliasConstant:        {},
	tfsSchemeAliasConstant:         {},
}

func isProviderSchemeAlias(candidate string) bool {
	_, isAlias := providerSchemeAliases[strings.ToLower(candidate)]
	return isAlias
}

// ResolutionRequest carries the repository-relative inputs a resolver renders.
type ResolutionRequest struct {
	Revision     string
	RelativePath string
	Lines        LineRange
}

// Resolver renders provider-specific web URLs for paths inside a repository.
type Resolver interface {
	Name() string
	Matches(origin Origin) bool
	Resolve(origin Origin, request ResolutionRequest) (string, error)
}

// UnsupportedProviderError indicates no resolver recognized the origin.
type UnsupportedProviderError struct {
	Origin Origin
}

// Error describes the unmatched origin.
func (unsupportedError UnsupportedProviderError) Error() string {
	return fmt.Sprintf(unsupportedProviderErrorTemplateConstant, formatOriginForDisplay(unsupportedError.Origin))
}

// MalformedOriginPathError indicates an origin matched a provider but its path
// lacks the segments that provider's URLs require.
type MalformedOriginPathError struct {
	Provider   string
	OriginPath string
}

// Error describes the unusable origin path.
func (malformedError MalformedOriginPathError) Error() string {
	return fmt.Sprintf(malformedOriginPathTemplateConstant, malformedError.Provider, malformedError.OriginPath)
}

// DefaultResolvers returns the provider table in matching order.
func DefaultResolvers() []Resolver {
	return []Resolver{
		GitHubResolver{},
		GitLabResolver{},
		BitbucketResolver{},
		KilnResolver{},
		TFSResolver{},
	}
}

// SelectResolver returns the first resolver whose provider recognizes the origin.
func SelectResolver(resolvers []Resolver, origin Origin) (Resolver, error) {
	for _, candidateResolver := range resolvers {
		if candidateResolver.Matches(origin) {
			return candidateResolver, nil
		}
	}
	return nil, UnsupportedProviderError{Origin: origin}
}

func formatOriginForDisplay(origin Origin) string {
	userDisplay := ""
	if len(origin.User) > 0 {
		userDisplay = fmt.Sprintf(originUserDisplayTemplateConstant, origin.User)
	}
	hostDisplay := origin.Host
	if len(hostDisplay) == 0 {
		hostDisplay = origin.Scheme
	}
	return fmt.Sprintf(originDisplayTemplateConstant, userDisplay, hostDisplay, origin.Path)
}
