package response

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/dmitrymomot/webdemo/core/handler"
)

// executeTemplate runs the template with the appropriate method.
func executeTemplate(tmpl *template.Template, name string, data any, w io.Writer) error {
	if tmpl == nil {
		return fmt.Errorf("template is nil")
	}

	if name != "" {
		return tmpl.ExecuteTemplate(w, name, data)
	}
	return tmpl.Execute(w, data)
}

// Template creates an HTML response using html/template with 200 OK status.
// The template is buffered before writing, so a failing template writes nothing.
func Template(tmpl *template.Template, data any) handler.Response {
	return TemplateNameWithStatus(tmpl, "", data, http.StatusOK)
}

// TemplateName renders a named template from a template collection.
func TemplateName(tmpl *template.Template, name string, data any) handler.Response {
	return TemplateNameWithStatus(tmpl, name, data, http.StatusOK)
}

// TemplateNameWithStatus renders a named template with a custom status code.
func TemplateNameWithStatus(tmpl *template.Template, name string, data any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		var buf bytes.Buffer
		if err := executeTemplate(tmpl, name, data, &buf); err != nil {
			return err
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, err := w.Write(buf.Bytes())
		return err
	}
}
