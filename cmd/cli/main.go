package main

import (
	"fmt"
	"os"

	"github.com/crucial707/scim-provision/cmd/cli/root"

	// Register subcommands.
	_ "github.com/crucial707/scim-provision/cmd/cli/token"
	_ "github.com/crucial707/scim-provision/cmd/cli/users"
)

func main() {
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
