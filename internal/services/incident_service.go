package services

import (
	"context"
	"log"

	"ImmoGest/server/internal/db"
	"ImmoGest/server/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type IncidentService struct{}

func NewIncidentService() *IncidentService {
	return &IncidentService{}
}

func (is *IncidentService) CreateIncident(ctx context.Context, inc *models.Incident) (int, error) {
	if !models.ValidIncidentPriority(inc.Priority) {
		inc.Priority = models.PriorityMedium
	}

	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("incidents").
		Columns("apartment_id", "reporter_id", "title", "description", "priority", "status").
		Values(inc.ApartmentID, inc.ReporterID, inc.Title, inc.Description, inc.Priority, models.IncidentOpen).
		Suffix("RETURNING id, created_at")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return 0, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&inc.ID, &inc.CreatedAt)
	if err != nil {
		log.Printf("Error creating incident: %v", err)
		return 0, err
	}

	inc.Status = models.IncidentOpen
	log.Printf("Incident %d created for apartment %d by user %d", inc.ID, inc.ApartmentID, inc.ReporterID)
	return inc.ID, nil
}

func (is *IncidentService) GetIncidents(ctx context.Context, reporterID int) ([]models.Incident, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "apartment_id", "reporter_id", "title", "description", "priority", "status", "created_at", "resolved_at").
		From("incidents").
		OrderBy("created_at DESC")

	// reporterID 0 means the admin view: all incidents.
	if reporterID != 0 {
		query = query.Where(squirrel.Eq{"reporter_id": reporterID})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	rows, err := db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error getting incidents: %v", err)
		return nil, err
	}
	defer rows.Close()

	var incidents []models.Incident
	for rows.Next() {
		var inc models.Incident
		err := rows.Scan(&inc.ID, &inc.ApartmentID, &inc.ReporterID, &inc.Title, &inc.Description,
			&inc.Priority, &inc.Status, &inc.CreatedAt, &inc.ResolvedAt)
		if err != nil {
			log.Printf("Error scanning incident row: %v", err)
			continue
		}
		incidents = append(incidents, inc)
	}

	return incidents, rows.Err()
}

func (is *IncidentService) UpdateIncidentStatus(ctx context.Context, incidentID int, status string) error {
	update := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("incidents").
		Set("status", status).
		Where(squirrel.Eq{"id": incidentID})

	if status == models.IncidentResolved {
		update = update.Set("resolved_at", squirrel.Expr("NOW()"))
	}

	sqlStr, args, err := update.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	ct, err := db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error updating incident %d: %v", incidentID, err)
		return err
	}
	if ct.RowsAffected() == 0 {
		return models.ErrIncidentNotFound
	}

	log.Printf("Incident %d set to %s", incidentID, status)
	return nil
}

func (is *IncidentService) GetIncidentById(ctx context.Context, incidentID int) (*models.Incident, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "apartment_id", "reporter_id", "title", "description", "priority", "status", "created_at", "resolved_at").
		From("incidents").
		Where(squirrel.Eq{"id": incidentID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	var inc models.Incident
	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&inc.ID, &inc.ApartmentID, &inc.ReporterID,
		&inc.Title, &inc.Description, &inc.Priority, &inc.Status, &inc.CreatedAt, &inc.ResolvedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrIncidentNotFound
		}
		log.Printf("Error getting incident %d: %v", incidentID, err)
		return nil, err
	}

	return &inc, nil
}
