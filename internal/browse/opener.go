package browse

import (
	"github.com/skratchdot/open-golang/open"
)

// Opener launches a URL in the user's preferred application.
type Opener interface {
	Open(targetURL string) error
}

// SystemOpener opens URLs through the platform default-handler mechanism.
type SystemOpener struct{}

// NewSystemOpener constructs a SystemOpener.
func NewSystemOpener() SystemOpener {
	return SystemOpener{}
}

// Open launches the URL with the operating system default handler.
func (SystemOpener) Open(targetURL string) error {
	return open.Run(targetURL)
}
