package services

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/app/repositories"
	"github.com/careerloft/careerloft/pkg/logger"
	"github.com/careerloft/careerloft/pkg/storage"
	"gorm.io/gorm"
)

// maxUploadSize caps a single document at 20 MiB.
const maxUploadSize = 20 << 20

var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".rtf":  "application/rtf",
}

// DocumentService stores order documents on a storage disk and tracks their
// metadata and versions.
type DocumentService struct {
	documents *repositories.DocumentRepository
	orders    *repositories.OrderRepository
}

func NewDocumentService() *DocumentService {
	return &DocumentService{
		documents: repositories.NewDocumentRepository(),
		orders:    repositories.NewOrderRepository(),
	}
}

// Upload saves a file under the order's folder and records a new row.
// Re-uploading the same filename bumps the version; older versions stay
// readable.
func (s *DocumentService) Upload(orderID, uploaderID uint, role models.Role, fileName string, size int64, r io.Reader) (models.Document, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Document{}, ErrNotFound
		}
		return models.Document{}, err
	}
	if !CanAccessOrder(order, uploaderID, role) {
		return models.Document{}, ErrForbidden
	}

	fileName = filepath.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." {
		return models.Document{}, Invalid("file name is required")
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	fileType, ok := allowedExtensions[ext]
	if !ok {
		return models.Document{}, Invalid("file type not allowed; use pdf, doc, docx, txt or rtf")
	}
	if size > maxUploadSize {
		return models.Document{}, Invalid("file exceeds the 20MB limit")
	}

	latest, err := s.documents.LatestVersion(orderID, fileName)
	if err != nil {
		return models.Document{}, err
	}
	version := latest + 1

	path := fmt.Sprintf("orders/%d/v%d_%s", orderID, version, fileName)
	if err := storage.PutStream(path, io.LimitReader(r, maxUploadSize)); err != nil {
		return models.Document{}, err
	}

	doc := models.Document{
		OrderID:    orderID,
		UploadedBy: uploaderID,
		FileName:   fileName,
		FileURL:    storage.URL(path),
		FileType:   fileType,
		FileSize:   size,
		Version:    version,
	}
	if err := s.documents.Create(&doc); err != nil {
		if derr := storage.Delete(path); derr != nil {
			logger.Warn("document: orphaned upload not removed", "path", path, "error", derr)
		}
		return models.Document{}, err
	}
	return doc, nil
}

// ForOrder lists an order's documents, newest first, with the order's
// visibility rule.
func (s *DocumentService) ForOrder(orderID, actorID uint, role models.Role) ([]models.Document, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanAccessOrder(order, actorID, role) {
		return nil, ErrForbidden
	}
	return s.documents.ForOrder(orderID)
}

// Open returns a document's metadata and a stream of its bytes, with the
// order's visibility rule. The caller closes the stream.
func (s *DocumentService) Open(documentID, actorID uint, role models.Role) (models.Document, io.ReadCloser, error) {
	doc, err := s.documents.FindByID(documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Document{}, nil, ErrNotFound
		}
		return models.Document{}, nil, err
	}

	order, err := s.orders.FindByID(doc.OrderID)
	if err != nil {
		return models.Document{}, nil, err
	}
	if !CanAccessOrder(order, actorID, role) {
		return models.Document{}, nil, ErrForbidden
	}

	path := fmt.Sprintf("orders/%d/v%d_%s", doc.OrderID, doc.Version, doc.FileName)
	stream, err := storage.GetStream(path)
	if err != nil {
		return models.Document{}, nil, err
	}
	return doc, stream, nil
}

// Delete removes a document. Only the uploader or an admin may delete.
func (s *DocumentService) Delete(documentID, actorID uint, role models.Role) error {
	doc, err := s.documents.FindByID(documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if role != models.RoleAdmin && doc.UploadedBy != actorID {
		return ErrForbidden
	}

	if err := s.documents.Delete(&doc); err != nil {
		return err
	}

	path := fmt.Sprintf("orders/%d/v%d_%s", doc.OrderID, doc.Version, doc.FileName)
	if err := storage.Delete(path); err != nil {
		logger.Warn("document: disk file not removed", "path", path, "error", err)
	}
	return nil
}
