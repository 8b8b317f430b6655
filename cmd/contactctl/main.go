// Command contactctl submits the site's contact form from a terminal,
// running the same validation and submission flow as the browser form.
package main

import (
	"fmt"
	"os"

	"vuidokan-site/config"

	"github.com/spf13/cobra"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	root := &cobra.Command{
		Use:          "contactctl",
		Short:        "Send contact requests to the VUIDOKAN site",
		SilenceUsage: true,
	}
	root.AddCommand(newSubmitCmd(cfg), newCheckCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
