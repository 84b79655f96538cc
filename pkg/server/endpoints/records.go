package endpoints

import (
	"fmt"
	"net/http"

	"gatehouse/pkg/server"
	"gatehouse/pkg/session"
)

// Record is a sample business object used to demonstrate the
// permission guard on a data page.
type Record struct {
	ID   int
	Name string
	Date string
}

func sampleRecords() []Record {
	return []Record{
		{ID: 1, Name: "Record 1", Date: "2023-05-01"},
		{ID: 2, Name: "Record 2", Date: "2023-05-02"},
		{ID: 3, Name: "Record 3", Date: "2023-05-03"},
	}
}

type recordsData struct {
	Records []Record
	CanEdit bool
}

// RegisterRecordsEndpoints registers the sample records pages
func (h *Handlers) RegisterRecordsEndpoints(s *server.Server) {
	r := s.Router
	r.Handle("/records", h.page("read", h.handleListRecords())).Methods("GET")
	r.Handle("/records/new", h.page("create", h.handleRecordForm(""))).Methods("GET")
	r.Handle("/records/new", h.page("create", h.handleCreateRecord())).Methods("POST")
	r.Handle("/records/{id}/edit", h.page("update", h.handleRecordForm("edit"))).Methods("GET")
	r.Handle("/records/{id}/edit", h.page("update", h.handleUpdateRecord())).Methods("POST")
}

func (h *Handlers) handleListRecords() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		canEdit := false
		if ctx, ok := session.Get(r); ok {
			canEdit = h.Authz.HasPermission(ctx.AccountID, "update")
		}
		h.Renderer.Render(w, r, "records", "Records", recordsData{
			Records: sampleRecords(),
			CanEdit: canEdit,
		})
	}
}

func (h *Handlers) handleRecordForm(mode string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record *Record
		title := "New record"
		if mode == "edit" {
			id, ok := pathID(r)
			if !ok {
				http.NotFound(w, r)
				return
			}
			record = &Record{ID: int(id), Name: fmt.Sprintf("Record %d", id), Date: "2023-05-01"}
			title = "Edit record"
		}
		h.Renderer.Render(w, r, "record_form", title, struct {
			Record *Record
		}{record})
	}
}

func (h *Handlers) handleCreateRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = h.Sessions.Flash(w, r, "success", "Record created successfully.")
		http.Redirect(w, r, "/records", http.StatusSeeOther)
	}
}

func (h *Handlers) handleUpdateRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		_ = h.Sessions.Flash(w, r, "success", fmt.Sprintf("Record %d updated successfully.", id))
		http.Redirect(w, r, "/records", http.StatusSeeOther)
	}
}
