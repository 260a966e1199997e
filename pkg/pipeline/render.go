package pipeline

import (
	"context"
	"fmt"

	pathio "github.com/matzehuels/polypath/pkg/io"
	"github.com/matzehuels/polypath/pkg/polypath"
	"github.com/matzehuels/polypath/pkg/render"
	"github.com/matzehuels/polypath/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats.
// Options must already have render defaults applied.
func Render(ctx context.Context, paths []polypath.PolyPath, opts Options) (map[string][]byte, error) {
	if opts.IsNodelink() {
		return renderNodelink(ctx, paths, opts)
	}
	return renderGrid(ctx, paths, opts)
}

func renderGrid(ctx context.Context, paths []polypath.PolyPath, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	// SVG is the source for the raster and PDF formats, so it is built once.
	var svg []byte
	svgOnce := func() []byte {
		if svg == nil {
			svg = render.SVG(paths, opts.renderOptions()...)
		}
		return svg
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svgOnce()
		case FormatPNG:
			data, err = render.ToPNG(ctx, svgOnce(), DefaultPNGScale)
		case FormatPDF:
			data, err = render.ToPDF(ctx, svgOnce())
		case FormatJSON:
			data, err = pathio.Marshal(paths)
		case FormatDOT:
			data = []byte(nodelink.GridDOT(paths, nodelink.Options{}))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderNodelink(ctx context.Context, paths []polypath.PolyPath, opts Options) (map[string][]byte, error) {
	dot := nodelink.GridDOT(paths, nodelink.Options{Numbered: !opts.NoLabels})
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, DefaultPNGScale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatJSON:
			data, err = pathio.Marshal(paths)
		case FormatDOT:
			data = []byte(dot)
		default:
			return nil, fmt.Errorf("unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
