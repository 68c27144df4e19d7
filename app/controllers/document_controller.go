package controllers

import (
	"io"
	"net/http"

	"github.com/careerloft/careerloft/app/services"
	"github.com/careerloft/careerloft/pkg/response"
)

// DocumentController covers order document exchange: multipart upload,
// listing and delete.
type DocumentController struct {
	documents *services.DocumentService
}

func NewDocumentController() *DocumentController {
	return &DocumentController{documents: services.NewDocumentService()}
}

// Upload stores a file against an order. Multipart field name "file".
// POST /api/orders/{id}/documents
func (c *DocumentController) Upload(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	orderID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid order id")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "expected multipart form upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "missing file field")
		return
	}
	defer file.Close()

	doc, err := c.documents.Upload(orderID, userID, role, header.Filename, header.Size, file)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, doc)
}

// Index lists an order's documents, newest first.
// GET /api/orders/{id}/documents
func (c *DocumentController) Index(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	orderID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid order id")
		return
	}
	docs, err := c.documents.ForOrder(orderID, userID, role)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, docs)
}

// Download streams a document's bytes.
// GET /api/documents/{id}/download
func (c *DocumentController) Download(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	documentID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid document id")
		return
	}

	doc, stream, err := c.documents.Open(documentID, userID, role)
	if err != nil {
		fail(w, r, err)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", doc.FileType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	io.Copy(w, stream) //nolint:errcheck
}

// Delete removes a document. Uploader or admin only.
// DELETE /api/documents/{id}
func (c *DocumentController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	documentID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid document id")
		return
	}
	if err := c.documents.Delete(documentID, userID, role); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "document deleted"})
}
