package main

import (
	"fmt"
	"os"

	"promptline/config"
	"promptline/editor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	e := editor.New(cfg)
	if err := e.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
