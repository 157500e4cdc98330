package clipboard

import (
	atottoclipboard "github.com/atotto/clipboard"
)

// Copier places text on the system clipboard.
type Copier interface {
	Copy(text string) error
}

// SystemCopier writes to the platform clipboard utility.
type SystemCopier struct{}

// NewSystemCopier constructs a SystemCopier.
func NewSystemCopier() SystemCopier {
	return SystemCopier{}
}

// Copy places the text on the system clipboard.
func (SystemCopier) Copy(text string) error {
	return atottoclipboard.WriteAll(text)
}
