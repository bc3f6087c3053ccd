// Package main is the planningsim command itself.
package main

import (
	"log"
	"os"

	"go.viam.com/planningsim/cli"
)

func main() {
	if err := cli.NewApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
