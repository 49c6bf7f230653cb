package main

import (
	"fmt"
	"os"

	"github.com/scarlettos/scpkg/cmd/scpkg"
	"github.com/scarlettos/scpkg/pkg/ui/styles"
)

func main() {
	rootCmd := scpkg.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))

		// Show the full help for the command that failed
		fmt.Fprintln(os.Stderr)
		_ = rootCmd.Help()

		os.Exit(1)
	}
}
