// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command decorctl is the admin console for the JoycDecor catalog.
package main

import (
	"os"

	"github.com/joycdecor/joycdecor/internal/console/cli"
)

func main() {
	os.Exit(cli.Execute())
}
