// Package fatpath provides pure helpers for the forward-slash paths the
// FAT driver understands.
//
// The helpers never touch a filesystem and never fail: malformed input
// yields a best-effort string. Normalization deliberately does not resolve
// ".." segments, those pass through untouched.
package fatpath

import "strings"

// Join joins path segments with forward slashes and normalizes the result.
func Join(parts ...string) string {
	return Normalize(strings.Join(parts, "/"))
}

// Normalize rewrites backslashes to forward slashes, collapses repeated
// separators and single-dot segments and strips a trailing separator. The
// root path stays "/", relative input stays relative.
func Normalize(path string) string {
	if path == "" {
		return ""
	}

	abs := strings.HasPrefix(path, "/") || strings.HasPrefix(path, "\\")
	path = strings.ReplaceAll(path, "\\", "/")

	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	for strings.Contains(path, "/./") {
		path = strings.ReplaceAll(path, "/./", "/")
	}

	path = strings.TrimSuffix(path, "/.")
	path = strings.TrimPrefix(path, "./")

	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	if path == "" {
		if abs {
			return "/"
		}

		return "."
	}

	return path
}

// Parent returns the parent directory of the given path. Top-level entries
// and the root itself report "/" as their parent.
func Parent(path string) string {
	norm := Normalize(path)

	idx := strings.LastIndex(norm, "/")
	if idx <= 0 {
		return "/"
	}

	return norm[:idx]
}

// Base returns the last segment of the given path, empty for the root.
func Base(path string) string {
	norm := Normalize(path)

	return norm[strings.LastIndex(norm, "/")+1:]
}

// Split returns the parent directory and the last segment of the path.
func Split(path string) (dir, name string) {
	return Parent(path), Base(path)
}

// IsAbs reports whether the path is anchored at the volume root.
func IsAbs(path string) bool {
	return strings.HasPrefix(Normalize(path), "/")
}
