package main

import (
	"fmt"
	"os"

	"go-plantcare/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "plantcare:", err)
		os.Exit(1)
	}
}
