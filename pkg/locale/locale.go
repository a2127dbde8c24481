// Package locale provides the locale-resolution and path-discovery
// primitives the compose package treats as an external collaborator:
// canonicalising a locale name and finding the Compose files associated
// with it or with the system as a whole.
package locale

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// aliases maps common locale aliases to their canonical form, the way a real
// locale database's alias file does. This is a practical subset, not the
// full X11 locale.alias table.
var aliases = map[string]string{
	"C":           "C",
	"POSIX":       "C",
	"en":          "en_US.UTF-8",
	"en_US":       "en_US.UTF-8",
	"":            "C",
}

// ResolveLocale canonicalises name (as found in LC_ALL, LC_CTYPE, or LANG)
// into its base form, e.g. "en_US" becomes "en_US.UTF-8" and "POSIX" becomes
// "C". An empty name resolves to "C"; a name with no alias is returned as is.
func ResolveLocale(name string) string {
	if canon, ok := aliases[name]; ok {
		return canon
	}
	return name
}

// systemComposeDir names the usual root of the per-locale Compose files.
// ComposeFilePath does not read it; it builds its path from XLocaleDir.
var systemComposeDir = "/usr/share/X11/locale"

// xlocaleDir is the fallback root for %S expansion when XLOCALEDIR is unset.
var xlocaleDir = "/usr/share/X11/locale"

// ComposeFilePath returns the path to the system Compose file for locale,
// i.e. the value %L expands to. It does not check that the file exists;
// callers attempt to open it and handle failure themselves.
func ComposeFilePath(locale string) string {
	canon := ResolveLocale(locale)
	dir := XLocaleDir()
	return filepath.Join(dir, canon, "Compose")
}

// XLocaleDir returns the system xlocale root, i.e. the value %S expands to:
// $XLOCALEDIR if set, otherwise the compiled-in default.
func XLocaleDir() string {
	if dir := os.Getenv("XLOCALEDIR"); dir != "" {
		return dir
	}
	return xlocaleDir
}

// Home returns $HOME, or an error if it is unset — the error %H expansion
// in an include string must produce per spec.md §4.2.
func Home() (string, error) {
	home := os.Getenv("HOME")
	if home == "" {
		return "", fmt.Errorf("locale: HOME is not set")
	}
	return home, nil
}

// UserComposeFile returns $HOME/.XCompose, or "" if HOME is unset.
func UserComposeFile() string {
	home := os.Getenv("HOME")
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".XCompose")
}

// EnvComposeFile returns $XCOMPOSEFILE, or "" if unset.
func EnvComposeFile() string {
	return os.Getenv("XCOMPOSEFILE")
}

// LocaleFromEnvironment resolves the active locale the way libc does: the
// first of LC_ALL, LC_CTYPE, LANG that is set, falling back to "C". A
// trailing ".UTF-8" is stripped from the value it returns.
func LocaleFromEnvironment() string {
	for _, v := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if val := os.Getenv(v); val != "" {
			return strings.TrimSuffix(val, ".UTF-8")
		}
	}
	return "C"
}
