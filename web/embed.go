// Package web holds the console's templates and browser assets.
package web

import (
	"embed"
	"io/fs"
)

// Templates holds the layouts, partials and pages parsed by the view engine.
//
//go:embed templates/layouts/*.html templates/partials/*.html templates/pages/*.html
var Templates embed.FS

//go:embed static/css/*.css static/js/*.js
var static embed.FS

// Assets returns the static files rooted at static/, as served under /static/.
func Assets() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
