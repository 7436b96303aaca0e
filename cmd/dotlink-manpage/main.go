package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dotlink/cmd/dotlink"
	"github.com/arthur-debert/dotlink/internal/version"
)

func main() {
	rootCmd := dotlink.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "DOTLINK",
		Section: "1",
		Source:  "dotlink " + version.Version,
		Manual:  "dotlink manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
