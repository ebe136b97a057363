package display

import (
	"io"
	"os"

	"github.com/arthur-debert/akabei/pkg/core"
)

// Renderer writes run results, package listings and errors
type Renderer interface {
	RenderResult(result *core.Result) error
	RenderList(infos []core.PackageInfo) error
	RenderError(err error) error
}

// NewRenderer returns a renderer for format writing to w. FormatAuto is
// resolved with DetectFormat when w is a file, and as plain text otherwise.
func NewRenderer(w io.Writer, format Format) Renderer {
	if format == FormatAuto {
		format = FormatText
		if f, ok := w.(*os.File); ok {
			format = DetectFormat(f)
		}
	}

	switch format {
	case FormatJSON:
		return newJSONRenderer(w)
	case FormatTerminal:
		return newTextRenderer(w, false)
	default:
		return newTextRenderer(w, true)
	}
}
