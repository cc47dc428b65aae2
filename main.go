package main

import (
	"fmt"
	"os"

	"hsouza/julius/cmd/ask"
	"hsouza/julius/cmd/export"
	"hsouza/julius/cmd/ingest"
	"hsouza/julius/cmd/root"
)

func init() {
	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(ask.Cmd)
	root.Cmd.AddCommand(export.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
