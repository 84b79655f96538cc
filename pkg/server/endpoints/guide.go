package endpoints

import (
	"html/template"
	"log"
	"net/http"

	"gatehouse/pkg/server"
	"gatehouse/pkg/server/web"
)

// RegisterGuideEndpoint registers the operator guide page
func (h *Handlers) RegisterGuideEndpoint(s *server.Server) {
	s.Router.Handle("/guide", h.page("read", h.handleGuide())).Methods("GET")
}

func (h *Handlers) handleGuide() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := web.GuideHTML()
		if err != nil {
			log.Printf("ERROR: rendering guide: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		h.Renderer.Render(w, r, "guide", "Operator guide", struct {
			Body template.HTML
		}{body})
	}
}
