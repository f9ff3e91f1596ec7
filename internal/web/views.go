package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"
)

const layout = "layouts/main"

//go:embed views
var viewsFS embed.FS

// NewEngine loads the console templates embedded in the binary.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("price", func(d decimal.Decimal) string {
		return d.StringFixed(2)
	})
	return engine
}
