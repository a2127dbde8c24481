package compose

// This file implements the three table-construction entry points described
// in spec.md §4.7/§6, grounded on the teacher's pkg/yang/modules.go
// Modules.Read/Parse pair (read the bytes, then hand them to the parser) and
// on pkg/yang/file.go's findFile search-path precedence for NewFromLocale.

import (
	"fmt"
	"io/ioutil"
	"log"

	"github.com/xkbcompose/compose/pkg/locale"
)

// Format names the on-disk syntax a loader entry point should expect.
// TEXT_V1 is the only supported value; anything else is a construction
// error.
type Format int

// FormatTextV1 is the only supported Compose file format.
const FormatTextV1 Format = 1

// CompileFlags modifies table construction. No flags are currently defined;
// any nonzero value is rejected.
type CompileFlags uint32

// NoCompileFlags is the only accepted CompileFlags value.
const NoCompileFlags CompileFlags = 0

// StateFlags modifies state-machine construction. No flags are currently
// defined; ValidateStateFlags rejects any nonzero value, while
// NewStateWithFlags stores whatever value it is given without checking.
type StateFlags uint32

// NoStateFlags is the only accepted StateFlags value.
const NoStateFlags StateFlags = 0

func validateFormat(format Format) error {
	if format != FormatTextV1 {
		return fmt.Errorf("compose: unsupported format %d", format)
	}
	return nil
}

func validateCompileFlags(flags CompileFlags) error {
	if flags != NoCompileFlags {
		return fmt.Errorf("compose: unknown compile flags %#x", uint32(flags))
	}
	return nil
}

// ValidateStateFlags rejects any StateFlags value other than NoStateFlags.
// It is exported so NewState-like constructors elsewhere (the CLI, tests)
// can honor the same contract without duplicating it.
func ValidateStateFlags(flags StateFlags) error {
	if flags != NoStateFlags {
		return fmt.Errorf("compose: unknown state flags %#x", uint32(flags))
	}
	return nil
}

func newParser(localeName string, logger *log.Logger) *parser {
	w := &warner{}
	if logger != nil {
		w.logf = logger.Printf
	}
	return &parser{table: newTable(), warn: w, locale: localeName}
}

// NewFromBuffer parses buf directly, without touching the filesystem, and
// returns the resulting table. path is used only to label diagnostics and
// to resolve relative include directives; it need not exist on disk.
func NewFromBuffer(buf []byte, path, localeName string, format Format, flags CompileFlags, logger *log.Logger) (*Table, error) {
	if err := validateFormat(format); err != nil {
		return nil, err
	}
	if err := validateCompileFlags(flags); err != nil {
		return nil, err
	}
	p := newParser(locale.ResolveLocale(localeName), logger)
	if err := p.parseFile(path, buf, 0); err != nil {
		return nil, fmt.Errorf("compose: parsing %s: %w", path, err)
	}
	return p.table, nil
}

// NewFromFile reads path and parses it as a Compose file.
func NewFromFile(path, localeName string, format Format, flags CompileFlags, logger *log.Logger) (*Table, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	return NewFromBuffer(data, path, localeName, format, flags, logger)
}

// NewFromLocale discovers the Compose file to use the way libX11 does: the
// path named by $XCOMPOSEFILE, then $HOME/.XCompose (skipped if $HOME is
// unset), then the system Compose file for localeName. The first of these
// that exists and opens successfully is parsed; if none can be opened,
// NewFromLocale fails.
func NewFromLocale(localeName string, flags CompileFlags, logger *log.Logger) (*Table, error) {
	if err := validateCompileFlags(flags); err != nil {
		return nil, err
	}

	var candidates []string
	if p := locale.EnvComposeFile(); p != "" {
		candidates = append(candidates, p)
	}
	if p := locale.UserComposeFile(); p != "" {
		candidates = append(candidates, p)
	}
	candidates = append(candidates, locale.ComposeFilePath(localeName))

	var lastErr error
	for _, path := range candidates {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			lastErr = err
			continue
		}
		return NewFromBuffer(data, path, localeName, FormatTextV1, NoCompileFlags, logger)
	}
	return nil, fmt.Errorf("compose: no usable Compose file found for locale %q: %w", localeName, lastErr)
}
