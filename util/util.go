// Package util is a set of utility variables or methods
package util

import (
	"path/filepath"

	mapset "github.com/deckarep/golang-set/v2"
)

// ImageExt lists the bundled image extensions. Matching is case sensitive.
var ImageExt = mapset.NewSet(
	".png", ".jpg", ".jpeg",
)

// SoundExt lists the bundled sound extensions. Matching is case sensitive.
var SoundExt = mapset.NewSet(
	".ogg", ".mp3", ".wav",
)

// HasExt reports whether name ends in one of the extensions in exts.
func HasExt(exts mapset.Set[string], name string) bool {
	return exts.Contains(filepath.Ext(name))
}
