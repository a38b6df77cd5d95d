package services

import (
	"context"
	"log"

	"ImmoGest/server/internal/db"
	"ImmoGest/server/internal/models"

	"github.com/Masterminds/squirrel"
)

type DocumentService struct{}

func NewDocumentService() *DocumentService {
	return &DocumentService{}
}

func (ds *DocumentService) CreateDocument(ctx context.Context, doc *models.Document) (int, error) {
	if !models.ValidDocumentCategory(doc.Category) {
		doc.Category = models.DocumentOther
	}

	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("documents").
		Columns("owner_id", "name", "url", "size", "mime_type", "category").
		Values(doc.OwnerID, doc.Name, doc.URL, doc.Size, doc.MimeType, doc.Category).
		Suffix("RETURNING id, uploaded_at")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return 0, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&doc.ID, &doc.UploadedAt)
	if err != nil {
		log.Printf("Error creating document: %v", err)
		return 0, err
	}

	log.Printf("Document %d stored for user %d (%s)", doc.ID, doc.OwnerID, doc.Name)
	return doc.ID, nil
}

func (ds *DocumentService) GetDocumentsByOwner(ctx context.Context, ownerID int) ([]models.Document, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "owner_id", "name", "url", "size", "mime_type", "category", "uploaded_at").
		From("documents").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("uploaded_at DESC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	rows, err := db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error getting documents for user %d: %v", ownerID, err)
		return nil, err
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(&doc.ID, &doc.OwnerID, &doc.Name, &doc.URL, &doc.Size, &doc.MimeType, &doc.Category, &doc.UploadedAt)
		if err != nil {
			log.Printf("Error scanning document row: %v", err)
			continue
		}
		documents = append(documents, doc)
	}

	return documents, rows.Err()
}
