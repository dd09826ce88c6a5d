// Package web holds the embedded templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var files embed.FS

// Templates is rooted at the templates directory.
func Templates() fs.FS {
	return sub("templates")
}

// EmailTemplates is rooted at the email templates directory.
func EmailTemplates() fs.FS {
	return sub("templates/email")
}

// Static is rooted at the static assets directory.
func Static() fs.FS {
	return sub("static")
}

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return f
}
