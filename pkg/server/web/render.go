package web

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/yuin/goldmark"

	"gatehouse/pkg/session"
)

//go:embed templates/*.html guide.md
var content embed.FS

// PageData is the data passed to every page template.
type PageData struct {
	Title         string
	AccountName   string
	Authenticated bool
	Flashes       []session.Flash
	Data          interface{}
}

// Renderer renders HTML pages from embedded templates.
type Renderer struct {
	sessions  *session.Manager
	templates map[string]*template.Template
}

// NewRenderer parses the embedded templates. Each page template is
// parsed together with the shared layout.
func NewRenderer(sessions *session.Manager) (*Renderer, error) {
	pages := []string{
		"login", "dashboard",
		"accounts_list", "account_form",
		"roles_list", "role_form",
		"permissions_list", "permission_form",
		"records", "record_form",
		"guide",
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.ParseFS(content, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, err
		}
		templates[page] = t
	}
	return &Renderer{sessions: sessions, templates: templates}, nil
}

// Render writes a page. The session context fills the navigation bar
// and pending flash messages are drained into the page.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, page, title string, data interface{}) {
	t, ok := r.templates[page]
	if !ok {
		log.Printf("ERROR: unknown page template %q", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	pd := PageData{Title: title, Data: data}
	if ctx, ok := session.Get(req); ok {
		pd.AccountName = ctx.AccountName
		pd.Authenticated = ctx.Authenticated()
	} else {
		ctx := r.sessions.Load(req)
		pd.AccountName = ctx.AccountName
		pd.Authenticated = ctx.Authenticated()
	}
	pd.Flashes = r.sessions.Flashes(w, req)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "layout", pd); err != nil {
		log.Printf("ERROR: rendering %q: %v", page, err)
	}
}

// GuideHTML renders the embedded operator guide from Markdown.
func GuideHTML() (template.HTML, error) {
	source, err := content.ReadFile("guide.md")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := goldmark.Convert(source, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
