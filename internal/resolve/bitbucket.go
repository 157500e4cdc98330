package resolve

import (
	"fmt"
	"strings"
)

const (
	bitbucketProviderNameConstant       = "bitbucket"
	bitbucketHostConstant               = "bitbucket.org"
	bitbucketRepositoryURLTemplate      = "https://bitbucket.org/%s/%s"
	bitbucketSourceSuffixTemplate       = "/src/%s/%s"
	bitbucketSingleLineTemplateConstant = "#lines-%d"
	bitbucketLineRangeTemplateConstant  = "#lines-%d:%d"
	bitbucketOriginSegmentCountConstant = 2
)

// BitbucketResolver renders bitbucket.org source URLs.
type BitbucketResolver struct{}

// Name identifies the provider.
func (BitbucketResolver) Name() string {
	return bitbucketProviderNameConstant
}

// Matches recognizes bitbucket.org hosts and the bitbucket/bb scheme aliases.
func (BitbucketResolver) Matches(origin Origin) bool {
	switch origin.Scheme {
	case bitbucketSchemeAliasConstant, bitbucketShortSchemeAlias:
		return true
	}
	return origin.Host == bitbucketHostConstant
}

// Resolve renders https://bitbucket.org/{owner}/{repo}[/src/{rev}/{path}[#lines-…]].
func (resolver BitbucketResolver) Resolve(origin Origin, request ResolutionRequest) (string, error) {
	pathSegments := strings.Split(origin.Path, pathSeparatorConstant)
	if len(pathSegments) < bitbucketOriginSegmentCountConstant {
		return "", MalformedOriginPathError{Provider: resolver.Name(), OriginPath: origin.Path}
	}

	resolvedURL := fmt.Sprintf(bitbucketRepositoryURLTemplate, pathSegments[0], pathSegments[1])
	if len(request.RelativePath) == 0 {
		return resolvedURL, nil
	}

	resolvedURL += fmt.Sprintf(bitbucketSourceSuffixTemplate, request.Revision, request.RelativePath)
	if request.Lines.IsZero() {
		return resolvedURL, nil
	}
	if request.Lines.End == 0 {
		return resolvedURL + fmt.Sprintf(bitbucketSingleLineTemplateConstant, request.Lines.Start), nil
	}
	return resolvedURL + fmt.Sprintf(bitbucketLineRangeTemplateConstant, request.Lines.Start, request.Lines.End), nil
}
