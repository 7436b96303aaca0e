package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotlink/cmd/dotlink"
	"github.com/arthur-debert/dotlink/pkg/style"
)

func main() {
	rootCmd := dotlink.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.NewTerminalRenderer("").RenderError(err))
		os.Exit(1)
	}
}
