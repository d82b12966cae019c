// Package web holds the server-rendered dashboard templates.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"comma":   Comma,
	"cell":    Cell,
	"percent": func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) + "%" },
	"decimal": func(f float64) string { return strconv.FormatFloat(f, 'f', 1, 64) },
}

// Templates parses every embedded template.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
}

// Comma formats a count with thousands separators.
func Comma(n int) string {
	return humanize.Comma(int64(n))
}

// Cell renders a report value for display. Whole numbers print the same
// whether they arrive as int64 or float64; separators start at five digits
// so years and hours read naturally.
func Cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return integer(x)
	case int:
		return integer(int64(x))
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return integer(int64(x))
		}
		return humanize.Ftoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func integer(n int64) string {
	if n > -10000 && n < 10000 {
		return strconv.FormatInt(n, 10)
	}
	return humanize.Comma(n)
}
