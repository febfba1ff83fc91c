package apihandlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/supercuration/supercon/pkg/app"
	"github.com/supercuration/supercon/pkg/models"
	"github.com/supercuration/supercon/pkg/server/handlertools"
	"github.com/supercuration/supercon/pkg/summary"
	"github.com/supercuration/supercon/pkg/viewer"
)

const (
	uploadField     = "input"
	multipartMemory = 32 << 20
)

// GetDocumentHandler godoc
//
//	@Summary		Returns the reconciled view of a document
//	@Description	fetch the annotations and the PDF of a processed document and reconcile them
//	@Tags			document
//	@Produce		json
//	@Param			hash	path		string	true	"Document hash"
//	@Param			refresh	query		bool	false	"Fetch again even when the document is already loaded"
//	@Success		200		{object}	viewer.Summary
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		404		{object}	APIError	"Not Found"
//	@Failure		502		{object}	APIError	"Bad Gateway"
//	@Router			/api/v1/documents/{hash} [get]
func GetDocumentHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hash := chi.URLParam(r, "hash")

		refresh, err := handlertools.BoolFromQuery(r, "refresh")
		if err != nil {
			handlertools.RenderError(w, fmt.Errorf("invalid refresh parameter: %w", err), http.StatusBadRequest)
			return
		}

		view, err := loadView(r, appState, hash, refresh)
		if err != nil {
			handlertools.RenderPipelineError(w, err)
			return
		}

		if err := handlertools.EncodeJSON(w, view.Summary()); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// ProcessDocumentHandler godoc
//
//	@Summary		Processes a PDF
//	@Description	submit a PDF to the annotation backend and reconcile the result
//	@Tags			document
//	@Accept			mpfd
//	@Produce		json
//	@Param			input	formData	file	true	"PDF document"
//	@Success		201		{object}	viewer.Summary
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		413		{object}	APIError	"Request Entity Too Large"
//	@Failure		502		{object}	APIError	"Bad Gateway"
//	@Router			/api/v1/process [post]
func ProcessDocumentHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxBytes := int64(appState.Config.Server.MaxUploadMB) << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			handlertools.RenderError(w, fmt.Errorf("invalid upload: %w", err), http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile(uploadField)
		if err != nil {
			handlertools.RenderError(w, models.NewBadRequestError("a PDF must be sent in the input field"), http.StatusBadRequest)
			return
		}
		defer file.Close()

		var buf bytes.Buffer
		if _, err := io.Copy(&buf, file); err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		view, err := appState.Viewer.Submit(r.Context(), header.Filename, buf.Bytes())
		if err != nil {
			handlertools.RenderPipelineError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		if err := handlertools.EncodeJSON(w, view.Summary()); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// GetPDFHandler godoc
//
//	@Summary		Returns the PDF of a document
//	@Description	the bytes submitted or fetched with the document, else fetched from the backend
//	@Tags			document
//	@Produce		application/pdf
//	@Param			hash	path		string	true	"Document hash"
//	@Success		200		{file}		binary
//	@Failure		404		{object}	APIError	"Not Found"
//	@Failure		502		{object}	APIError	"Bad Gateway"
//	@Router			/api/v1/documents/{hash}/pdf [get]
func GetPDFHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hash := chi.URLParam(r, "hash")

		pdf, err := appState.Viewer.PDF(r.Context(), hash)
		if err != nil {
			handlertools.RenderPipelineError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", hash+".pdf"))
		w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
		if _, err := w.Write(pdf); err != nil {
			log.Errorf("writing document %s: %v", hash, err)
		}
	}
}

// GetRegionHandler godoc
//
//	@Summary		Returns the detail of an overlay region
//	@Description	name, links and attributes of the span behind a region
//	@Tags			document
//	@Produce		json
//	@Param			hash		path		string	true	"Document hash"
//	@Param			regionId	path		string	true	"Region ID"
//	@Success		200			{object}	overlay.Detail
//	@Failure		404			{object}	APIError	"Not Found"
//	@Router			/api/v1/documents/{hash}/regions/{regionId} [get]
func GetRegionHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hash := chi.URLParam(r, "hash")
		regionID := chi.URLParam(r, "regionId")

		view, err := loadView(r, appState, hash, false)
		if err != nil {
			handlertools.RenderPipelineError(w, err)
			return
		}

		detail, err := view.Layer.Select(regionID)
		if err != nil {
			handlertools.RenderPipelineError(w, err)
			return
		}

		if err := handlertools.EncodeJSON(w, detail); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// ExportHandler godoc
//
//	@Summary		Exports the summary table
//	@Description	download the rows of the summary table as csv, rdf or tsv
//	@Tags			document
//	@Produce		plain
//	@Param			hash	path		string	true	"Document hash"
//	@Param			format	path		string	true	"csv, rdf or tsv"
//	@Success		200		{string}	string
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		404		{object}	APIError	"Not Found"
//	@Router			/api/v1/documents/{hash}/export/{format} [get]
func ExportHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hash := chi.URLParam(r, "hash")

		format, err := summary.ParseFormat(chi.URLParam(r, "format"))
		if err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		view, err := appState.Viewer.View(hash)
		if err != nil {
			handlertools.RenderPipelineError(w, err)
			return
		}

		opts := summary.ExportOptions{
			BaseURI:   appState.Config.Export.RDFBaseURI,
			Namespace: appState.Config.Export.RDFNamespace,
		}
		var buf bytes.Buffer
		if err := summary.Export(&buf, format, view.Table.Rows(), opts); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName()))
		if _, err := w.Write(buf.Bytes()); err != nil {
			log.Errorf("writing %s export of %s: %v", format, hash, err)
		}
	}
}

// loadView returns the committed view of hash, opening the document when it has not been
// loaded yet or when refresh is set.
func loadView(r *http.Request, appState *app.AppState, hash string, refresh bool) (*viewer.View, error) {
	if !refresh {
		view, err := appState.Viewer.View(hash)
		if err == nil {
			return view, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
	}
	return appState.Viewer.Open(r.Context(), hash)
}
