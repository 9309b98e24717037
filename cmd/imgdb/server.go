package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
)

// serverCommand starts a minimal read-only HTTP file server rooted at a
// materialized gallery/links output directory (or the archive's own
// directory) for local preview. It is explicitly not a query API and
// has no write path (§6).
func serverCommand(args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", "localhost:8080", "listen address")
	root := fs.String("root", "", "directory to serve (defaults to the archive's directory)")
	dbname := fs.String("dbname", "imgdb.htm", "archive file path, used to derive the default root")
	fs.Usage = func() {
		fmt.Println("Usage: imgdb server [options]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return &userError{err: err}
	}

	dir := *root
	if dir == "" {
		dir = filepath.Dir(*dbname)
		if dir == "" {
			dir = "."
		}
	}

	log.Printf("imgdb server: serving %s on http://%s (read-only preview)", dir, *addr)
	return http.ListenAndServe(*addr, http.FileServer(http.Dir(dir)))
}
