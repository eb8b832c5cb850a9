// Package web holds the pages and assets served by diverart.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html static
var files embed.FS

var (
	Upload = template.Must(template.ParseFS(files, "templates/upload.html"))
	Result = template.Must(template.ParseFS(files, "templates/result.html"))
)

// Static returns the files under static/, rooted at that directory.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
