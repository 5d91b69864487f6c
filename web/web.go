// Package web embeds the HTML templates and static assets.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed views
var views embed.FS

//go:embed static
var static embed.FS

// Views returns the template tree rooted at views/.
func Views() http.FileSystem {
	sub, err := fs.Sub(views, "views")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Static returns the asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
