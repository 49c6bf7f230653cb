package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/scarlettos/scpkg/cmd/scpkg"
	"github.com/scarlettos/scpkg/internal/version"
)

func main() {
	rootCmd := scpkg.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "SCPKG",
		Section: "1",
		Source:  "scpkg " + version.Version,
		Manual:  "scpkg manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
