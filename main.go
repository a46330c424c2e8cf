package main

import (
	"fmt"
	"os"
	"strings"

	"blogadmin/cli"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("blogadmin version %s\n", cliVersion)
	default:
		cli.HandleCommand(os.Args[1:])
	}
}

func printHelp() {
	helpText := `Usage: blogadmin <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the blog admin service.
  init                           Initialize a new empty database.
  clean                          Clean the blog database.
  backup                         Create a backup of the database.
  restore [file]                 Restore database from backup.
`
	fmt.Println(helpText)
}
