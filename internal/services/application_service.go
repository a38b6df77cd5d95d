package services

import (
	"context"
	"log"

	"ImmoGest/server/internal/db"
	"ImmoGest/server/internal/mailer"
	"ImmoGest/server/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type ApplicationService struct {
	Mailer mailer.Sender
}

func NewApplicationService(sender mailer.Sender) *ApplicationService {
	return &ApplicationService{
		Mailer: sender,
	}
}

func (as *ApplicationService) CreateApplication(ctx context.Context, app *models.Application) (int, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("applications").
		Columns("apartment_id", "applicant_name", "email", "phone", "income", "status").
		Values(app.ApartmentID, app.ApplicantName, app.Email, app.Phone, app.Income, models.ApplicationPending).
		Suffix("RETURNING id, created_at")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return 0, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&app.ID, &app.CreatedAt)
	if err != nil {
		log.Printf("Error creating application: %v", err)
		return 0, err
	}

	app.Status = models.ApplicationPending
	log.Printf("Application %d created for apartment %d (%s)", app.ID, app.ApartmentID, app.ApplicantName)
	return app.ID, nil
}

func (as *ApplicationService) GetApplications(ctx context.Context, apartmentID int) ([]models.Application, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "apartment_id", "applicant_name", "email", "phone", "income", "status", "created_at").
		From("applications").
		OrderBy("created_at DESC")

	if apartmentID != 0 {
		query = query.Where(squirrel.Eq{"apartment_id": apartmentID})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	rows, err := db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error getting applications: %v", err)
		return nil, err
	}
	defer rows.Close()

	var applications []models.Application
	for rows.Next() {
		var app models.Application
		err := rows.Scan(&app.ID, &app.ApartmentID, &app.ApplicantName, &app.Email, &app.Phone,
			&app.Income, &app.Status, &app.CreatedAt)
		if err != nil {
			log.Printf("Error scanning application row: %v", err)
			continue
		}
		applications = append(applications, app)
	}

	return applications, rows.Err()
}

func (as *ApplicationService) AcceptApplication(ctx context.Context, applicationID int) error {
	return as.setStatus(ctx, applicationID, models.ApplicationAccepted)
}

// RejectApplication flips the status and notifies the applicant by email.
// The notice is fire-and-forget: a mailer failure is logged but the
// rejection itself stands.
func (as *ApplicationService) RejectApplication(ctx context.Context, applicationID int, reason string) error {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("applications").
		Set("status", models.ApplicationRejected).
		Where(squirrel.Eq{"id": applicationID, "status": models.ApplicationPending}).
		Suffix("RETURNING applicant_name, email")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	var applicantName, email string
	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&applicantName, &email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return models.ErrApplicationNotFound
		}
		log.Printf("Error rejecting application %d: %v", applicationID, err)
		return err
	}

	go func() {
		result, err := as.Mailer.SendRejectionNotice(context.Background(), email, applicantName, reason)
		if err != nil {
			log.Printf("Error sending rejection notice for application %d: %v", applicationID, err)
			return
		}
		log.Printf("Rejection notice for application %d delivered (id %s)", applicationID, result.ID)
	}()

	log.Printf("Application %d rejected", applicationID)
	return nil
}

func (as *ApplicationService) setStatus(ctx context.Context, applicationID int, status string) error {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("applications").
		Set("status", status).
		Where(squirrel.Eq{"id": applicationID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	ct, err := db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error updating application %d: %v", applicationID, err)
		return err
	}
	if ct.RowsAffected() == 0 {
		return models.ErrApplicationNotFound
	}

	log.Printf("Application %d set to %s", applicationID, status)
	return nil
}
