package httpserver

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	appreports "maintreport/internal/application/reports"
	"maintreport/internal/domain/reports"
	"maintreport/internal/middleware"
)

//go:embed templates/index.html
var templates embed.FS

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Router struct {
	svc   *appreports.Service
	index *template.Template
}

func NewRouter(svc *appreports.Service) http.Handler {
	r := &Router{
		svc:   svc,
		index: template.Must(template.ParseFS(templates, "templates/index.html")),
	}
	mux := chi.NewRouter()

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.Get("/", r.wrap(r.handleIndex))

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/reports", r.wrap(r.handleSubmit))
		rt.Get("/reports", r.wrap(r.handleList))
		rt.Get("/reports/export", r.wrap(r.handleExport))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// validationError marks boundary failures that map to 400.
type validationError struct{ err error }

func (e validationError) Error() string { return e.err.Error() }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var ve validationError
			if errors.As(err, &ve) {
				http.Error(w, ve.Error(), http.StatusBadRequest)
				return
			}
			if errors.Is(err, fs.ErrNotExist) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

type indexData struct {
	Records   []*recordView
	HasFile   bool
	Submitted bool
}

type recordView struct {
	Date            string
	Unit            string
	Machine         string
	TechnicianName  string
	Issue           string
	GeneratedReport string
}

// GET /
func (r *Router) handleIndex(w http.ResponseWriter, req *http.Request) error {
	history, err := r.svc.History(req.Context())
	if err != nil {
		return err
	}

	data := indexData{
		HasFile:   fileExists(r.svc.ExportPath()),
		Submitted: req.URL.Query().Get("submitted") == "1",
	}
	for _, rec := range history {
		v := &recordView{
			Unit:            rec.Unit,
			Machine:         rec.Machine,
			TechnicianName:  rec.TechnicianName,
			Issue:           rec.Issue,
			GeneratedReport: rec.GeneratedReport,
		}
		if !rec.Date.IsZero() {
			v.Date = rec.Date.Format("2006-01-02 15:04:05")
		}
		data.Records = append(data.Records, v)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return r.index.Execute(w, data)
}

// POST /v1/reports
// Accepts JSON {"unit","machine","technician_name","issue"} or a form
// post from the index page. Empty fields are rejected before the
// generator or the log is touched.
func (r *Router) handleSubmit(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Unit           string `json:"unit"`
		Machine        string `json:"machine"`
		TechnicianName string `json:"technician_name"`
		Issue          string `json:"issue"`
	}

	isForm := strings.HasPrefix(req.Header.Get("Content-Type"), "application/x-www-form-urlencoded") ||
		strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data")
	if isForm {
		if err := req.ParseForm(); err != nil {
			return validationError{err}
		}
		body.Unit = req.PostFormValue("unit")
		body.Machine = req.PostFormValue("machine")
		body.TechnicianName = req.PostFormValue("technician_name")
		body.Issue = req.PostFormValue("issue")
	} else {
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			return validationError{fmt.Errorf("invalid request body: %w", err)}
		}
	}

	if err := middleware.ValidateIncident(body.Unit, body.Machine, body.TechnicianName, body.Issue); err != nil {
		return validationError{err}
	}

	result, err := r.svc.Submit(req.Context(), appreports.SubmitCommand{
		Unit:           middleware.SanitizeString(body.Unit),
		Machine:        middleware.SanitizeString(body.Machine),
		TechnicianName: middleware.SanitizeString(body.TechnicianName),
		Issue:          middleware.SanitizeString(body.Issue),
	})
	if err != nil {
		return err
	}

	if isForm {
		http.Redirect(w, req, "/?submitted=1", http.StatusSeeOther)
		return nil
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(result)
}

// GET /v1/reports
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	history, err := r.svc.History(req.Context())
	if err != nil {
		return err
	}
	if history == nil {
		history = []*reports.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(history)
}

// GET /v1/reports/export — stream the backing workbook for download.
func (r *Router) handleExport(w http.ResponseWriter, req *http.Request) error {
	path := r.svc.ExportPath()
	if !fileExists(path) {
		return fs.ErrNotExist
	}

	w.Header().Set("Content-Type", workbookContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, req, path)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
