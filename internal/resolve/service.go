package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitlink/internal/vcs"
)

const (
	defaultPathArgumentConstant                 = "."
	detectorNotConfiguredMessageConstant        = "working copy detector not configured"
	pathInspectionFailureTemplateConstant       = "inspecting path %s: %w"
	absolutePathFailureTemplateConstant         = "resolving absolute path for %s: %w"
	pathOutsideWorkingCopyTemplateConstant      = "%s lies outside the working copy rooted at %s"
	parentDirectoryReferenceConstant            = ".."
	currentDirectoryRelativePathConstant        = "."
	resolvedURLFieldNameConstant                = "url"
	browserOpenFailureMessageConstant           = "Failed to open the resolved URL in a browser"
	clipboardCopyFailureMessageConstant         = "Failed to copy the resolved URL to the clipboard"
	browserOpenerUnavailableMessageConstant     = "No browser opener is available; skipping open"
	clipboardCopierUnavailableMessageConstant   = "No clipboard copier is available; skipping copy"
)

// ErrDetectorNotConfigured reports a missing working copy detector dependency.
var ErrDetectorNotConfigured = errors.New(detectorNotConfiguredMessageConstant)

// WorkingCopyDetector identifies the repository containing a directory.
type WorkingCopyDetector interface {
	Detect(executionContext context.Context, directory string, remoteName string) (vcs.WorkingCopy, error)
}

// BrowserOpener launches a URL in the user's preferred application.
type BrowserOpener interface {
	Open(targetURL string) error
}

// ClipboardCopier places text on the system clipboard.
type ClipboardCopier interface {
	Copy(text string) error
}

// PathOutsideWorkingCopyError indicates the requested path is not under the detected repository root.
type PathOutsideWorkingCopyError struct {
	Path string
	Root string
}

// Error describes the out-of-tree path.
func (outsideError PathOutsideWorkingCopyError) Error() string {
	return fmt.Sprintf(pathOutsideWorkingCopyTemplateConstant, outsideError.Path, outsideError.Root)
}

// ServiceDependencies carries the collaborators a Service requires.
type ServiceDependencies struct {
	Logger          *zap.Logger
	Detector        WorkingCopyDetector
	Resolvers       []Resolver
	BrowserOpener   BrowserOpener
	ClipboardCopier ClipboardCopier
	Output          io.Writer
}

// ResolutionOptions describes a single resolution request.
type ResolutionOptions struct {
	PathArgument    string
	OpenBrowser     bool
	CopyToClipboard bool
	UsePermalink    bool
	RemoteName      string
}

// Service turns path arguments into provider URLs and performs the requested side effects.
type Service struct {
	logger          *zap.Logger
	detector        WorkingCopyDetector
	resolvers       []Resolver
	browserOpener   BrowserOpener
	clipboardCopier ClipboardCopier
	output          io.Writer
}

// NewService constructs a Service, defaulting the logger, resolver table, and output stream.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Detector == nil {
		return nil, ErrDetectorNotConfigured
	}
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if len(dependencies.Resolvers) == 0 {
		dependencies.Resolvers = DefaultResolvers()
	}
	if dependencies.Output == nil {
		dependencies.Output = os.Stdout
	}

	return &Service{
		logger:          dependencies.Logger,
		detector:        dependencies.Detector,
		resolvers:       dependencies.Resolvers,
		browserOpener:   dependencies.BrowserOpener,
		clipboardCopier: dependencies.ClipboardCopier,
		output:          dependencies.Output,
	}, nil
}

// Resolve maps the path argument onto a provider URL, prints it, and runs the requested side effects.
// Side-effect failures are logged as warnings and never fail a completed resolution.
func (service *Service) Resolve(executionContext context.Context, options ResolutionOptions) (string, error) {
	pathArgument := options.PathArgument
	if len(pathArgument) == 0 {
		pathArgument = defaultPathArgumentConstant
	}

	pathSpec, pathSpecError := ParsePathSpec(pathArgument)
	if pathSpecError != nil {
		return "", pathSpecError
	}

	absolutePath, absoluteError := filepath.Abs(pathSpec.Path)
	if absoluteError != nil {
		return "", fmt.Errorf(absolutePathFailureTemplateConstant, pathSpec.Path, absoluteError)
	}

	fileInformation, statError := os.Stat(absolutePath)
	if statError != nil {
		return "", fmt.Errorf(pathInspectionFailureTemplateConstant, absolutePath, statError)
	}
	probeDirectory := absolutePath
	if !fileInformation.IsDir() {
		probeDirectory = filepath.Dir(absolutePath)
	}

	workingCopy, detectionError := service.detector.Detect(executionContext, probeDirectory, options.RemoteName)
	if detectionError != nil {
		return "", detectionError
	}

	origin, originError := ParseOrigin(workingCopy.RemoteURL)
	if originError != nil {
		return "", originError
	}

	providerResolver, selectionError := SelectResolver(service.resolvers, origin)
	if selectionError != nil {
		return "", selectionError
	}

	relativePath, relativeError := repositoryRelativePath(workingCopy.Root, absolutePath)
	if relativeError != nil {
		return "", relativeError
	}

	revision := workingCopy.Branch
	if options.UsePermalink {
		revision = workingCopy.Revision
	}

	resolvedURL, resolutionError := providerResolver.Resolve(origin, ResolutionRequest{
		Revision:     revision,
		RelativePath: relativePath,
		Lines:        pathSpec.Lines,
	})
	if resolutionError != nil {
		return "", resolutionError
	}

	fmt.Fprintln(service.output, resolvedURL)

	service.performSideEffects(resolvedURL, options)
	return resolvedURL, nil
}

func (service *Service) performSideEffects(resolvedURL string, options ResolutionOptions) {
	if options.OpenBrowser {
		switch {
		case service.browserOpener == nil:
			service.logger.Warn(browserOpenerUnavailableMessageConstant, zap.String(resolvedURLFieldNameConstant, resolvedURL))
		default:
			if openError := service.browserOpener.Open(resolvedURL); openError != nil {
				service.logger.Warn(
					browserOpenFailureMessageConstant,
					zap.String(resolvedURLFieldNameConstant, resolvedURL),
					zap.Error(openError),
				)
			}
		}
	}

	if options.CopyToClipboard {
		switch {
		case service.clipboardCopier == nil:
			service.logger.Warn(clipboardCopierUnavailableMessageConstant, zap.String(resolvedURLFieldNameConstant, resolvedURL))
		default:
			if copyError := service.clipboardCopier.Copy(resolvedURL); copyError != nil {
				service.logger.Warn(
					clipboardCopyFailureMessageConstant,
					zap.String(resolvedURLFieldNameConstant, resolvedURL),
					zap.Error(copyError),
				)
			}
		}
	}
}

func repositoryRelativePath(workingCopyRoot string, absolutePath string) (string, error) {
	relativePath, relativeError := filepath.Rel(workingCopyRoot, absolutePath)
	if relativeError != nil || escapesWorkingCopy(relativePath) {
		return "", PathOutsideWorkingCopyError{Path: absolutePath, Root: workingCopyRoot}
	}
	if relativePath == currentDirectoryRelativePathConstant {
		return "", nil
	}
	return filepath.ToSlash(relativePath), nil
}

// escapesWorkingCopy reports whether a Rel result climbs out of the root.
// A plain ".." prefix test would also reject files whose names merely start
// with two dots, such as "..config" at the repository root.
func escapesWorkingCopy(relativePath string) bool {
	if relativePath == parentDirectoryReferenceConstant {
		return true
	}
	return strings.HasPrefix(relativePath, parentDirectoryReferenceConstant+string(filepath.Separator))
}
