package server

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/mockhotels/brandaudit/internal/audit"
	"github.com/mockhotels/brandaudit/internal/extract"
	"github.com/mockhotels/brandaudit/internal/pipeline"
	"github.com/mockhotels/brandaudit/internal/rendering"
	"github.com/mockhotels/brandaudit/internal/session"
)

// allowedImageMIMEs is the upload allowlist. An upload without a declared
// type falls back to the generic image default instead of being rejected.
var allowedImageMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// handleIndex renders the main page: the access gate when unauthenticated,
// otherwise the upload form plus whatever the session has cached.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromCookie(r)
	if !ok {
		s.renderPage(w, http.StatusOK, rendering.Page{})
		return
	}

	s.renderPage(w, http.StatusOK, s.pageFor(sess, rendering.Page{}))
}

// handleSubmit runs one submit action: required image, optional document.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	release := sess.AcquireSubmit()
	defer release()

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.renderPage(w, http.StatusBadRequest, s.pageFor(sess, rendering.Page{
			Error: "Upload could not be read. Check the file sizes and try again.",
		}))
		return
	}

	in, vErr := s.readUploads(r)
	if vErr != nil {
		s.renderPage(w, http.StatusBadRequest, s.pageFor(sess, rendering.Page{Error: vErr.Error()}))
		return
	}

	res, err := s.submitter.Submit(r.Context(), sess, in)
	if err != nil {
		log.Printf("Submit failed: %v", err)
		s.renderPage(w, HTTPStatus(err), s.pageFor(sess, rendering.Page{Error: submitErrorMessage(err)}))
		return
	}

	page := rendering.Page{
		ShowSpec: res.Extracted,
		Verdict:  rendering.NewVerdictView(res.Verdict),
	}
	if res.CacheHit {
		page.Notice = "No change detected in the document — using previously extracted data."
	}
	if res.ExtractionErr != nil {
		log.Printf("Extraction failed, audit ran without context: %v", res.ExtractionErr)
		page.ExtractionError = "Document extraction failed; the photo was analyzed without document context."
	}
	if res.Spec != nil {
		page.Spec = rendering.NewSpecView(*res.Spec)
	}

	page.Authenticated = true
	s.renderPage(w, http.StatusOK, page)
}

// handleExtracted returns the cached extraction as JSON, on demand.
func (s *Server) handleExtracted(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "session expired")
		return
	}

	spec, digest, ok := sess.CachedSpec()
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "no extraction cached")
		return
	}

	body := map[string]any{
		"digest": digest,
		"parsed": spec.Parsed,
	}
	if spec.Parsed {
		body["spec"] = spec.Structured
	} else {
		body["raw"] = spec.Raw
	}
	s.jsonResponse(w, http.StatusOK, body)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readUploads pulls the image and optional document parts out of the
// multipart form. Returns a ValidationError before any outbound call when
// the required image is missing or unreadable.
func (s *Server) readUploads(r *http.Request) (pipeline.Input, *pipeline.ValidationError) {
	var in pipeline.Input

	imgFile, imgHeader, err := r.FormFile("image")
	if err != nil {
		return in, &pipeline.ValidationError{Field: "image", Message: "an image is required"}
	}
	defer func() { _ = imgFile.Close() }()

	in.Image, err = io.ReadAll(imgFile)
	if err != nil {
		return in, &pipeline.ValidationError{Field: "image", Message: "the image could not be read"}
	}
	in.ImageMIME = imageMIME(imgHeader)
	if !allowedImageMIMEs[in.ImageMIME] {
		return in, &pipeline.ValidationError{Field: "image", Message: "unsupported image type (use JPEG, PNG, or WebP)"}
	}

	docFile, docHeader, err := r.FormFile("document")
	switch {
	case err == nil:
		defer func() { _ = docFile.Close() }()
		in.HasDocument = true
		in.Document, err = io.ReadAll(docFile)
		if err != nil {
			return in, &pipeline.ValidationError{Field: "document", Message: "the document could not be read"}
		}
		in.DocumentMIME = docHeader.Header.Get("Content-Type")
		if in.DocumentMIME == "" {
			in.DocumentMIME = extract.DefaultDocumentMIME
		}
	case errors.Is(err, http.ErrMissingFile):
		// Audit-only flow.
	default:
		return in, &pipeline.ValidationError{Field: "document", Message: "the document could not be read"}
	}

	return in, nil
}

func imageMIME(header *multipart.FileHeader) string {
	if mime := header.Header.Get("Content-Type"); mime != "" {
		return mime
	}
	return audit.DefaultImageMIME
}

// pageFor fills a page with the session's cached spec and verdict, keeping
// whatever banners the caller already set.
func (s *Server) pageFor(sess *session.Session, page rendering.Page) rendering.Page {
	page.Authenticated = true
	if spec, _, ok := sess.CachedSpec(); ok {
		page.Spec = rendering.NewSpecView(*spec)
	}
	if v, ok := sess.LastVerdict(); ok && page.Verdict == nil {
		page.Verdict = rendering.NewVerdictView(*v)
	}
	return page
}

// submitErrorMessage converts a submit failure into user-facing text.
func submitErrorMessage(err error) string {
	switch err.(type) {
	case *pipeline.ValidationError:
		return err.Error()
	case *audit.ServiceError:
		return "The image analysis service call failed. Nothing was changed; try again."
	case *extract.ServiceError:
		return "The document extraction service call failed."
	default:
		return "Something went wrong processing the submit."
	}
}
