// Package assets embeds the files the binary ships with: the browser page
// and the sqlite migrations for the results log.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed web sql
var files embed.FS

// Web returns the static browser client (index.html, app.js, style.css).
func Web() fs.FS {
	return sub("web")
}

// Migrations returns the *.sql migrations, applied in lexical order.
func Migrations() fs.FS {
	return sub("sql")
}

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		// only reachable if the embed directive and dir disagree
		panic(err)
	}
	return f
}
