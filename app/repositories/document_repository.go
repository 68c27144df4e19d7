package repositories

import (
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/orm"
)

// DocumentRepository handles database operations for Document.
type DocumentRepository struct{}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{}
}

// FindByID looks up a document by primary key.
func (r *DocumentRepository) FindByID(id uint) (models.Document, error) {
	var doc models.Document
	err := orm.DB().Model(&models.Document{}).Where("id = ?", id).First(&doc)
	return doc, err
}

// Create persists a new document row.
func (r *DocumentRepository) Create(doc *models.Document) error {
	return orm.DB().Create(doc)
}

// Delete removes a document row. The caller is responsible for the
// authorization check (uploader or admin only) and for the disk file.
func (r *DocumentRepository) Delete(doc *models.Document) error {
	return orm.DB().Delete(doc)
}

// ForOrder returns an order's documents, newest first.
func (r *DocumentRepository) ForOrder(orderID uint) ([]models.Document, error) {
	var docs []models.Document
	err := orm.DB().Model(&models.Document{}).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Get(&docs)
	return docs, err
}

// LatestVersion returns the highest stored version for (orderID, fileName),
// or 0 when the file has never been uploaded.
func (r *DocumentRepository) LatestVersion(orderID uint, fileName string) (int, error) {
	var docs []models.Document
	err := orm.DB().Model(&models.Document{}).
		Where("order_id = ? AND file_name = ?", orderID, fileName).
		Order("version DESC").
		Limit(1).
		Get(&docs)
	if err != nil || len(docs) == 0 {
		return 0, err
	}
	return docs[0].Version, nil
}
