package services

import (
	"context"
	"log"

	"ImmoGest/server/internal/db"
	"ImmoGest/server/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type LeaseService struct {
	PropertyService *PropertyService
}

func NewLeaseService(propertyService *PropertyService) *LeaseService {
	return &LeaseService{
		PropertyService: propertyService,
	}
}

// CreateLease opens a lease and marks the apartment occupied in the same
// transaction.
func (ls *LeaseService) CreateLease(ctx context.Context, lease *models.Lease) (int, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		log.Printf("Error starting transaction: %v", err)
		return 0, err
	}
	defer tx.Rollback(ctx)

	insert := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("leases").
		Columns("apartment_id", "tenant_id", "start_date", "end_date", "rent", "deposit", "active").
		Values(lease.ApartmentID, lease.TenantID, lease.StartDate, lease.EndDate, lease.Rent, lease.Deposit, true).
		Suffix("RETURNING id, created_at")

	sqlStr, args, err := insert.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return 0, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	err = tx.QueryRow(ctx, sqlStr, args...).Scan(&lease.ID, &lease.CreatedAt)
	if err != nil {
		log.Printf("Error creating lease: %v", err)
		return 0, err
	}

	update := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("apartments").
		Set("status", models.ApartmentOccupied).
		Where(squirrel.Eq{"id": lease.ApartmentID})

	updateSQL, updateArgs, err := update.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return 0, err
	}

	if _, err := tx.Exec(ctx, updateSQL, updateArgs...); err != nil {
		log.Printf("Error marking apartment %d occupied: %v", lease.ApartmentID, err)
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("Error committing lease transaction: %v", err)
		return 0, err
	}

	lease.Active = true
	log.Printf("Lease %d created for apartment %d, tenant %d", lease.ID, lease.ApartmentID, lease.TenantID)
	return lease.ID, nil
}

// EndLease closes the lease and frees the apartment, in one transaction.
func (ls *LeaseService) EndLease(ctx context.Context, leaseID int) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		log.Printf("Error starting transaction: %v", err)
		return err
	}
	defer tx.Rollback(ctx)

	update := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("leases").
		Set("active", false).
		Set("end_date", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": leaseID, "active": true}).
		Suffix("RETURNING apartment_id")

	sqlStr, args, err := update.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	var apartmentID int
	err = tx.QueryRow(ctx, sqlStr, args...).Scan(&apartmentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return models.ErrLeaseNotFound
		}
		log.Printf("Error ending lease %d: %v", leaseID, err)
		return err
	}

	free := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("apartments").
		Set("status", models.ApartmentVacant).
		Where(squirrel.Eq{"id": apartmentID})

	freeSQL, freeArgs, err := free.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	if _, err := tx.Exec(ctx, freeSQL, freeArgs...); err != nil {
		log.Printf("Error marking apartment %d vacant: %v", apartmentID, err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("Error committing end-lease transaction: %v", err)
		return err
	}

	log.Printf("Lease %d ended, apartment %d vacant", leaseID, apartmentID)
	return nil
}

func (ls *LeaseService) GetLeaseById(ctx context.Context, leaseID int) (*models.Lease, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "apartment_id", "tenant_id", "start_date", "end_date", "rent", "deposit", "active", "created_at").
		From("leases").
		Where(squirrel.Eq{"id": leaseID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	var lease models.Lease
	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&lease.ID, &lease.ApartmentID, &lease.TenantID,
		&lease.StartDate, &lease.EndDate, &lease.Rent, &lease.Deposit, &lease.Active, &lease.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrLeaseNotFound
		}
		log.Printf("Error getting lease %d: %v", leaseID, err)
		return nil, err
	}

	return &lease, nil
}

func (ls *LeaseService) GetLeasesByTenant(ctx context.Context, tenantID int) ([]models.Lease, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "apartment_id", "tenant_id", "start_date", "end_date", "rent", "deposit", "active", "created_at").
		From("leases").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("start_date DESC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	rows, err := db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error getting leases for tenant %d: %v", tenantID, err)
		return nil, err
	}
	defer rows.Close()

	var leases []models.Lease
	for rows.Next() {
		var lease models.Lease
		err := rows.Scan(&lease.ID, &lease.ApartmentID, &lease.TenantID, &lease.StartDate,
			&lease.EndDate, &lease.Rent, &lease.Deposit, &lease.Active, &lease.CreatedAt)
		if err != nil {
			log.Printf("Error scanning lease row: %v", err)
			continue
		}
		leases = append(leases, lease)
	}

	return leases, rows.Err()
}
