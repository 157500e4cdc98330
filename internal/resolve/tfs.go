package resolve

import (
	"fmt"
	"strings"
)

const (
	tfsProviderNameConstant        = "tfs"
	tfsAzureHostConstant           = "dev.azure.com"
	tfsVisualStudioHostSuffix      = "visualstudio.com"
	tfsRepositoryURLTemplate       = "https://%s/%s"
	tfsPathQueryTemplateConstant   = "?path=/%s&version=GB%s"
	tfsSingleLineTemplateConstant  = "&line=%d"
	tfsLineEndTemplateConstant     = "&lineEnd=%d"
	tfsRepositoryMarkerConstant    = "_git"
)

// TFSResolver renders Azure DevOps / TFS repository URLs.
type TFSResolver struct{}

// Name identifies the provider.
func (TFSResolver) Name() string {
	return tfsProviderNameConstant
}

// Matches recognizes dev.azure.com, *.visualstudio.com hosts, and the tfs scheme alias.
func (TFSResolver) Matches(origin Origin) bool {
	if origin.Scheme == tfsSchemeAliasConstant {
		return true
	}
	return origin.Host == tfsAzureHostConstant || strings.HasSuffix(origin.Host, tfsVisualStudioHostSuffix)
}

// Resolve renders https://{host}/{org}/{project}/_git/{repo}?path=/{path}&version=GB{rev}[&line=…].
func (resolver TFSResolver) Resolve(origin Origin, request ResolutionRequest) (string, error) {
	if !strings.Contains(origin.Path, tfsRepositoryMarkerConstant) {
		return "", MalformedOriginPathError{Provider: resolver.Name(), OriginPath: origin.Path}
	}

	providerHost := origin.Host
	if len(providerHost) == 0 {
		providerHost = tfsAzureHostConstant
	}

	resolvedURL := fmt.Sprintf(tfsRepositoryURLTemplate, providerHost, origin.Path)
	resolvedURL += fmt.Sprintf(tfsPathQueryTemplateConstant, request.RelativePath, request.Revision)
	if request.Lines.IsZero() {
		return resolvedURL, nil
	}
	resolvedURL += fmt.Sprintf(tfsSingleLineTemplateConstant, request.Lines.Start)
	if request.Lines.End > 0 {
		resolvedURL += fmt.Sprintf(tfsLineEndTemplateConstant, request.Lines.End)
	}
	return resolvedURL, nil
}
