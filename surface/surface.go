package surface

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/midbel/barchart"
)

var ErrSurface = errors.New("unknown surface")

type Surface interface {
	Render(io.Writer, barchart.Scene) error
	ContentType() string
	Extension() string
}

func ByName(name string) (Surface, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "svg":
		return SVG{}, nil
	case "png":
		return PNG{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrSurface, name)
	}
}

func Names() []string {
	return []string{"svg", "png"}
}
