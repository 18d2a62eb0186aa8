package render

import (
	"strings"

	"github.com/pkg/errors"
)

// Target selects an output encoding.
type Target string

// Supported targets.
const (
	TargetPlainText    Target = "plain"
	TargetStyledMarkup Target = "markup"
	TargetLatexPrompt  Target = "latex"
)

// ErrUnsupportedTarget is returned for targets the renderer does not know.
var ErrUnsupportedTarget = errors.New("unsupported render target")

// Targets lists the supported targets.
func Targets() (targets []Target) {
	targets = []Target{TargetPlainText, TargetStyledMarkup, TargetLatexPrompt}
	return targets
}

// ParseTarget maps a user-supplied name, or one of its aliases, to a Target.
func ParseTarget(name string) (target Target, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "plain", "text", "plaintext", "txt":
		target = TargetPlainText
	case "markup", "html", "styled", "word":
		target = TargetStyledMarkup
	case "latex", "latex-prompt", "tex":
		target = TargetLatexPrompt
	default:
		err = errors.Wrapf(ErrUnsupportedTarget, "%q", name)
	}
	return target, err
}
