// Command mybrowser renders a page to a PNG: fetch, parse, style,
// layout, paint, rasterize.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/copaaglo/mybrowser/pkg/browser"
	"github.com/copaaglo/mybrowser/pkg/render"
)

func main() {
	width := flag.Float64("width", 800, "viewport width in pixels")
	out := flag.String("o", "out.png", "output PNG path")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <url-or-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *width, *out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(target string, width float64, out string) error {
	tab := browser.NewTab(width, width*3/4)
	if err := tab.Load(context.Background(), target); err != nil {
		return err
	}
	page := tab.Page()

	// Render the whole page, not just the first viewport.
	height := int(page.Height)
	if height < 1 {
		height = 1
	}
	renderer := render.NewRenderer(tab.ResolveImage)
	if err := renderer.SavePNG(out, page.DisplayList, int(width), height, 0); err != nil {
		return err
	}

	if page.Title != "" {
		fmt.Printf("Rendered %q (%s) to %s\n", page.Title, page.URL, out)
	} else {
		fmt.Printf("Rendered %s to %s\n", page.URL, out)
	}
	return nil
}
