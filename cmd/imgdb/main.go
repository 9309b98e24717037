package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	var err error

	switch command {
	case "version", "--version", "-v":
		err = versionCommand()
	case "help", "--help", "-h":
		printUsage()
		os.Exit(0)
	case "info":
		err = infoCommand(os.Args[2:])
	case "add":
		err = addCommand(os.Args[2:])
	case "del":
		err = delCommand(os.Args[2:])
	case "rename":
		err = renameCommand(os.Args[2:])
	case "export":
		err = exportCommand(os.Args[2:])
	case "gallery":
		err = galleryCommand(os.Args[2:])
	case "links":
		err = linksCommand(os.Args[2:])
	case "db":
		err = dbCommand(os.Args[2:])
	case "server":
		err = serverCommand(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if isUserError(err) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Println("imgdb - content-addressed image catalog")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  imgdb <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  info      Extract and print meta for one or more files, no archive")
	fmt.Println("  add       Ingest files into the archive")
	fmt.Println("  del       Delete records (and optionally files) from the archive")
	fmt.Println("  rename    Rename files in place using a template, no archive")
	fmt.Println("  export    Write filtered records as JSON/JSON-lines/CSV/HTML")
	fmt.Println("  gallery   Render a paginated HTML gallery from the archive")
	fmt.Println("  links     Materialize a link tree from the archive")
	fmt.Println("  db        Sync the archive against what is actually on disk")
	fmt.Println("  server    Serve a materialized directory for local preview")
	fmt.Println("  version   Show version information")
	fmt.Println("  help      Show this help message")
	fmt.Println("")
	fmt.Println("Run 'imgdb <command> -h' for command-specific options.")
}
