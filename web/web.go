// Package web bundles the HTML views so the binary and tests do not depend on the working directory.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var files embed.FS

// Templates serves the views rooted at templates/, as the fiber html engine expects.
func Templates() http.FileSystem {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
