package main

import (
	"os"

	"chef-express/internal/ui"
)

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		ui.Err(os.Stderr, err.Error())
		os.Exit(1)
	}
}
