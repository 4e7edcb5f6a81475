package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/modbisect/cmd/modbisect"
	"github.com/arthur-debert/modbisect/pkg/ui"
)

func main() {
	rootCmd := modbisect.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		styles := ui.NewStyles(ui.DetectFormat(os.Stderr))
		fmt.Fprintln(os.Stderr, styles.Error.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
