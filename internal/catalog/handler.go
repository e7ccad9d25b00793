package catalog

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cinelog/cinelog/internal/storage"
	"github.com/cinelog/cinelog/pkg/handlers"
	"github.com/cinelog/cinelog/pkg/pagination"
	"github.com/cinelog/cinelog/pkg/routes"
	"github.com/google/uuid"
)

// UploadURLPrefix is the public path prefix under which stored images are
// served; stored image paths are relative to it.
const UploadURLPrefix = "/uploads/"

var errServerFault = errors.New("server error")

// Handler provides HTTP endpoints for catalog entry operations.
type Handler struct {
	sys           System
	sink          storage.System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// NewHandler creates a catalog handler with the specified configuration.
func NewHandler(sys System, sink storage.System, logger *slog.Logger, pagination pagination.Config, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		sink:          sink,
		logger:        logger.With("handler", "catalog"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the catalog endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/api/movies",
		Description: "Catalog entry management",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), page)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	imagePath, err := h.storeUpload(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	cmd := CreateCommand{
		Title:      r.FormValue("title"),
		Kind:       Kind(r.FormValue("type")),
		Director:   r.FormValue("director"),
		Budget:     parseBudget(r.FormValue("budget")),
		Location:   r.FormValue("location"),
		Duration:   r.FormValue("duration"),
		YearOrTime: r.FormValue("yearOrTime"),
		Details:    r.FormValue("details"),
		ImagePath:  imagePath,
	}

	entry, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, entry)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, ErrNotFound)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	imagePath, err := h.storeUpload(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var cmd UpdateCommand
	if v, ok := formField(r, "title"); ok {
		cmd.Title = &v
	}
	if v, ok := formField(r, "type"); ok {
		kind := Kind(v)
		cmd.Kind = &kind
	}
	if v, ok := formField(r, "director"); ok {
		cmd.Director = &v
	}
	if v, ok := formField(r, "budget"); ok {
		cmd.Budget = parseBudget(v)
	}
	if v, ok := formField(r, "location"); ok {
		cmd.Location = &v
	}
	if v, ok := formField(r, "duration"); ok {
		cmd.Duration = &v
	}
	if v, ok := formField(r, "yearOrTime"); ok {
		cmd.YearOrTime = &v
	}
	if v, ok := formField(r, "details"); ok {
		cmd.Details = &v
	}
	if imagePath != "" {
		cmd.ImagePath = &imagePath
	}

	entry, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, entry)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, ErrNotFound)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondMessage(w, http.StatusOK, "Deleted")
}

// storeUpload persists the optional image field and returns its public
// path. A request without an image field yields an empty path. The file
// is written before the store is touched; a later store failure leaves
// the file orphaned rather than rolling it back.
func (h *Handler) storeUpload(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", ErrInvalidUpload
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		return "", ErrFileTooLarge
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", ErrInvalidUpload
	}

	name, err := h.sink.Store(r.Context(), header.Filename, data)
	if err != nil {
		return "", err
	}

	return UploadURLPrefix + name, nil
}

// respondError maps domain errors to HTTP statuses. Client errors carry
// the rejection message; server faults respond with a generic message and
// log the underlying error.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := MapHTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("internal error", "error", err)
		handlers.RespondError(w, h.logger, status, errServerFault)
		return
	}
	handlers.RespondError(w, h.logger, status, err)
}

// formField reports whether the multipart form carried the named field,
// distinguishing an absent field from an explicitly empty one.
func formField(r *http.Request, name string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	values, ok := r.MultipartForm.Value[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// parseBudget returns nil for absent or non-numeric values; budget
// formatting is advisory, not enforced.
func parseBudget(v string) *float64 {
	if v == "" {
		return nil
	}
	b, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &b
}
