package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"

	"lessonloop/internal/config"
	"lessonloop/internal/views"
)

var (
	templates     *template.Template
	templatesOnce sync.Once
	cfg           *config.Config
)

// SetConfig sets the config for debug logging
func SetConfig(c *config.Config) {
	cfg = c
}

// InitTemplates initializes templates at startup so a broken template
// fails the process immediately instead of at first render.
func InitTemplates() {
	initTemplates()
}

func initTemplates() {
	templatesOnce.Do(func() {
		funcMap := template.FuncMap{
			"sub": func(a, b int) int {
				return a - b
			},
			"add": func(a, b int) int {
				return a + b
			},
		}

		tmpl := template.New("").Funcs(funcMap)
		var err error
		templates, err = tmpl.ParseFS(views.TemplatesFS, "*.html")
		if err != nil {
			log.Printf("ERROR: Failed to parse templates: %v", err)
			panic(fmt.Sprintf("Failed to parse templates: %v", err))
		}

		if cfg != nil {
			cfg.Debugf("Templates parsed:")
			for _, t := range templates.Templates() {
				cfg.Debugf("  - %s", t.Name())
			}
		}
	})
}

// Maps template filenames to their content template names. Pages not
// listed here fall back to a content template named "content".
var contentTemplateMap = map[string]string{
	"login.html":        "login_content",
	"runs_list.html":    "runs_list_content",
	"run_new.html":      "run_new_content",
	"run_detail.html":   "run_detail_content",
	"session_plan.html": "session_plan_content",
}

// Templates that use auth_layout instead of the main layout.
var authLayoutTemplates = map[string]bool{
	"login.html": true,
}

func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}) {
	initTemplates()

	contentTemplateName, exists := contentTemplateMap[name]
	if !exists {
		contentTemplateName = "content"
	}

	if templates.Lookup(contentTemplateName) == nil {
		log.Printf("ERROR: Content template '%s' not found", contentTemplateName)
		http.Error(w, fmt.Sprintf("Content template '%s' not found", contentTemplateName), http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = make(map[string]interface{})
	}
	data["ContentTemplate"] = contentTemplateName

	layoutName := "layout"
	if authLayoutTemplates[name] {
		layoutName = "auth_layout"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, layoutName, data); err != nil {
		log.Printf("ERROR: Template execute error: %v", err)
		http.Error(w, fmt.Sprintf("Template execute error: %v", err), http.StatusInternalServerError)
	}
}
