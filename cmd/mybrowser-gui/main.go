// Command mybrowser-gui opens the desktop browser window.
package main

import (
	"flag"

	"github.com/copaaglo/mybrowser/pkg/ui"
)

func main() {
	flag.Parse()
	start := ""
	if flag.NArg() > 0 {
		start = flag.Arg(0)
	}
	ui.NewShell().Run(start)
}
