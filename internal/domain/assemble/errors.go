// Where: internal/domain/assemble/errors.go
// What: Structured assembly failures.
// Why: Every failure names the assembler, the platform and any captured tool output.
package assemble

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an assembly failure.
type Kind string

const (
	KindToolchainIncompatible    Kind = "ToolchainIncompatible"
	KindNoModulesResolved        Kind = "NoModulesResolved"
	KindDependencyAnalysisFailed Kind = "DependencyAnalysisFailed"
	KindLinkToolFailed           Kind = "LinkToolFailed"
	KindJarCopyFailed            Kind = "JarCopyFailed"
	KindLauncherCopyFailed       Kind = "LauncherCopyFailed"
	KindPackagingFailed          Kind = "PackagingFailed"
	KindCleanupFailed            Kind = "CleanupFailed"
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrToolchainIncompatible    = errors.New("toolchain incompatible")
	ErrNoModulesResolved        = errors.New("no modules resolved")
	ErrDependencyAnalysisFailed = errors.New("dependency analysis failed")
	ErrLinkToolFailed           = errors.New("link tool failed")
	ErrJarCopyFailed            = errors.New("jar copy failed")
	ErrLauncherCopyFailed       = errors.New("launcher copy failed")
	ErrPackagingFailed          = errors.New("packaging failed")
	ErrCleanupFailed            = errors.New("cleanup failed")
)

var sentinels = map[Kind]error{
	KindToolchainIncompatible:    ErrToolchainIncompatible,
	KindNoModulesResolved:        ErrNoModulesResolved,
	KindDependencyAnalysisFailed: ErrDependencyAnalysisFailed,
	KindLinkToolFailed:           ErrLinkToolFailed,
	KindJarCopyFailed:            ErrJarCopyFailed,
	KindLauncherCopyFailed:       ErrLauncherCopyFailed,
	KindPackagingFailed:          ErrPackagingFailed,
	KindCleanupFailed:            ErrCleanupFailed,
}

// Error is a failure of one target platform within one assembler.
type Error struct {
	Kind      Kind
	Assembler string
	Platform  string
	Message   string
	// Output is the captured tool output, if any.
	Output string
	Err    error
}

// NewError builds an *Error. Platform may be empty for assembler-wide failures.
func NewError(kind Kind, assembler, platform, message string, cause error) *Error {
	return &Error{
		Kind:      kind,
		Assembler: assembler,
		Platform:  platform,
		Message:   message,
		Err:       cause,
	}
}

// WithOutput attaches captured tool output.
func (e *Error) WithOutput(output string) *Error {
	e.Output = output
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Assembler != "" {
		fmt.Fprintf(&b, " [%s", e.Assembler)
		if e.Platform != "" {
			fmt.Fprintf(&b, "/%s", e.Platform)
		}
		b.WriteString("]")
	} else if e.Platform != "" {
		fmt.Fprintf(&b, " [%s]", e.Platform)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		b.WriteString("\n")
		b.WriteString(out)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	sentinel, ok := sentinels[e.Kind]
	return ok && sentinel == target
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var assembleErr *Error
	if errors.As(err, &assembleErr) {
		return assembleErr.Kind, true
	}
	return "", false
}
