// Package assets picks bundled celebration images and sounds at random,
// avoiding recent repeats.
package assets

import (
	"fmt"

	"github.com/aouyang1/errorparty/util"
	mapset "github.com/deckarep/golang-set/v2"
)

type Category int

const (
	Image Category = iota
	Sound
)

// Categories lists every asset category in pick order.
var Categories = []Category{Image, Sound}

func (c Category) String() string {
	switch c {
	case Image:
		return "images"
	case Sound:
		return "sounds"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ParseCategory is the inverse of Category.String.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "images":
		return Image, nil
	case "sounds":
		return Sound, nil
	}
	return 0, fmt.Errorf("unknown asset category %q", s)
}

// Dir is the category's directory name under the assets root.
func (c Category) Dir() string {
	return c.String()
}

// Extensions returns the accepted file extensions for the category.
func (c Category) Extensions() mapset.Set[string] {
	if c == Sound {
		return util.SoundExt
	}
	return util.ImageExt
}

// minPoolSize is the pool size at or below which repeats are tolerated.
func (c Category) minPoolSize() int {
	if c == Sound {
		return 3
	}
	return 1
}
