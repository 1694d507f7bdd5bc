// Package web embeds the single-page study UI.
package web

import (
	"embed"
	"io/fs"
)

//go:embed assets
var assets embed.FS

// Index returns the contents of index.html.
func Index() ([]byte, error) {
	return assets.ReadFile("assets/index.html")
}

// Static is the file tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(assets, "assets/static")
	if err != nil {
		panic(err)
	}
	return sub
}
