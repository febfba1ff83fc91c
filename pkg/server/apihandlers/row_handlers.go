package apihandlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/supercuration/supercon/internal"
	"github.com/supercuration/supercon/pkg/app"
	"github.com/supercuration/supercon/pkg/models"
	"github.com/supercuration/supercon/pkg/server/handlertools"
)

var log = internal.GetLogger()

var validate = validator.New()

// FeedbackRequest is a cell edit posted by the inline editor of the summary table.
type FeedbackRequest struct {
	// PK is the id of the edited cell.
	PK    string `validate:"required"`
	Name  string
	Value string `validate:"max=1024"`
	// Hash optionally names the document the cell belongs to.
	Hash string
}

// AddRowHandler godoc
//
//	@Summary		Adds an empty row
//	@Description	append a manual row to the summary table of a document
//	@Tags			table
//	@Produce		json
//	@Param			hash	path		string	true	"Document hash"
//	@Success		201		{object}	summary.Row
//	@Failure		404		{object}	APIError	"Not Found"
//	@Router			/api/v1/documents/{hash}/rows [post]
func AddRowHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hash := chi.URLParam(r, "hash")

		row, err := appState.Viewer.AddRow(hash)
		if err != nil {
			handlertools.RenderPipelineError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		if err := handlertools.EncodeJSON(w, row); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// DeleteRowHandler godoc
//
//	@Summary		Removes a row
//	@Description	delete a row from the summary table of a document
//	@Tags			table
//	@Param			hash	path		string	true	"Document hash"
//	@Param			rowId	path		string	true	"Row ID"
//	@Success		200		{string}	string	"OK"
//	@Failure		404		{object}	APIError	"Not Found"
//	@Router			/api/v1/documents/{hash}/rows/{rowId} [delete]
func DeleteRowHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hash := chi.URLParam(r, "hash")
		rowID := chi.URLParam(r, "rowId")

		if err := appState.Viewer.RemoveRow(hash, rowID); err != nil {
			handlertools.RenderPipelineError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// FeedbackHandler godoc
//
//	@Summary		Edits a table cell
//	@Description	apply a curator correction to a cell of the summary table
//	@Tags			table
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			pk		formData	string	true	"Cell ID"
//	@Param			name	formData	string	false	"Field name"
//	@Param			value	formData	string	false	"New value"
//	@Param			hash	formData	string	false	"Document hash"
//	@Success		200		{object}	summary.Row
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		404		{object}	APIError	"Not Found"
//	@Router			/annotation/feedback [post]
func FeedbackHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			handlertools.RenderError(w, models.NewBadRequestError(err.Error()), http.StatusBadRequest)
			return
		}

		req := FeedbackRequest{
			PK:    strings.TrimSpace(r.PostForm.Get("pk")),
			Name:  r.PostForm.Get("name"),
			Value: r.PostForm.Get("value"),
			Hash:  strings.TrimSpace(r.PostForm.Get("hash")),
		}
		if err := validate.Struct(req); err != nil {
			handlertools.RenderError(w, models.NewBadRequestError(err.Error()), http.StatusBadRequest)
			return
		}

		row, err := appState.Viewer.UpdateCell(req.Hash, req.PK, req.Value)
		if err != nil {
			handlertools.RenderPipelineError(w, err)
			return
		}
		log.Debugf("cell %s (%s) set to %q", req.PK, req.Name, req.Value)

		if err := handlertools.EncodeJSON(w, row); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
