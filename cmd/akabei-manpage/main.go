package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/akabei/internal/cli"
	"github.com/arthur-debert/akabei/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "AKABEI",
		Section: "1",
		Source:  "akabei " + version.Version,
		Manual:  "akabei manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
