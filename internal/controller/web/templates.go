package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

const unknownChannel = "Unknown Channel"

var funcs = template.FuncMap{
	"letter": func(i int) string {
		if i < 0 || i > 25 {
			return "-"
		}
		return string(rune('A' + i))
	},
	"channel": func(name string) string {
		if name == "" {
			return unknownChannel
		}
		return name
	},
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"inc": func(i int) int {
		return i + 1
	},
	"answered": func(answers []string, i int) string {
		if i < len(answers) {
			return answers[i]
		}
		return ""
	},
}

// LoadTemplates parses the embedded page templates into the router.
func LoadTemplates(router *gin.Engine) error {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)
	return nil
}
