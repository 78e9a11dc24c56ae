package main

import (
	"os"

	"github.com/tkingovr/interceptor/cmd/interceptor/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
