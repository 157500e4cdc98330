package resolve

import (
	"fmt"
	"strings"
)

const (
	kilnProviderNameConstant       = "kiln"
	kilnHostSuffixConstant         = "kilnhg.com"
	kilnFileURLTemplateConstant    = "https://%s.kilnhg.com/Code/%s/Files/%s?rev=%s"
	kilnSingleLineTemplateConstant = "#%d"
	kilnLineRangeTemplateConstant  = "#%d-%d"
	kilnHostLabelSeparatorConstant = "."
)

// KilnResolver renders Kiln (kilnhg.com) file URLs.
type KilnResolver struct{}

// Name identifies the provider.
func (KilnResolver) Name() string {
	return kilnProviderNameConstant
}

// Matches recognizes *.kilnhg.com hosts and the kiln scheme alias.
func (KilnResolver) Matches(origin Origin) bool {
	if origin.Scheme == kilnSchemeAliasConstant {
		return true
	}
	return strings.HasSuffix(origin.Host, kilnHostSuffixConstant)
}

// Resolve renders https://{account}.kilnhg.com/Code/{repo}/Files/{path}?rev={rev}[#…].
// The account comes from the origin userinfo, falling back to the first host label.
func (resolver KilnResolver) Resolve(origin Origin, request ResolutionRequest) (string, error) {
	accountName := origin.User
	if len(accountName) == 0 {
		accountName = strings.SplitN(origin.Host, kilnHostLabelSeparatorConstant, 2)[0]
	}
	if len(accountName) == 0 || len(origin.Path) == 0 {
		return "", MalformedOriginPathError{Provider: resolver.Name(), OriginPath: origin.Path}
	}

	resolvedURL := fmt.Sprintf(
		kilnFileURLTemplateConstant,
		accountName,
		origin.Path,
		request.RelativePath,
		request.Revision,
	)
	if request.Lines.IsZero() {
		return resolvedURL, nil
	}
	if request.Lines.End == 0 {
		return resolvedURL + fmt.Sprintf(kilnSingleLineTemplateConstant, request.Lines.Start), nil
	}
	return resolvedURL + fmt.Sprintf(kilnLineRangeTemplateConstant, request.Lines.Start, request.Lines.End), nil
}
