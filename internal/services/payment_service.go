package services

import (
	"context"
	"log"

	"ImmoGest/server/internal/db"
	"ImmoGest/server/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type PaymentService struct{}

func NewPaymentService() *PaymentService {
	return &PaymentService{}
}

// SchedulePayment creates a pending rent payment for a lease.
func (ps *PaymentService) SchedulePayment(ctx context.Context, p *models.Payment) (int, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("payments").
		Columns("lease_id", "amount", "due_date", "status").
		Values(p.LeaseID, p.Amount, p.DueDate, models.PaymentPending).
		Suffix("RETURNING id, created_at")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return 0, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		log.Printf("Error scheduling payment: %v", err)
		return 0, err
	}

	p.Status = models.PaymentPending
	log.Printf("Payment %d scheduled for lease %d, due %s", p.ID, p.LeaseID, p.DueDate.Format("2006-01-02"))
	return p.ID, nil
}

// RecordPayment settles a pending payment and accrues loyalty points for
// the tenant in the same transaction: on-time settlements earn more than
// late ones.
func (ps *PaymentService) RecordPayment(ctx context.Context, paymentID int, method string) (*models.Payment, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		log.Printf("Error starting transaction: %v", err)
		return nil, err
	}
	defer tx.Rollback(ctx)

	update := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("payments").
		Set("paid_at", squirrel.Expr("NOW()")).
		Set("method", method).
		Where(squirrel.Eq{"id": paymentID, "status": models.PaymentPending}).
		Suffix("RETURNING id, lease_id, amount, due_date, paid_at, created_at")

	sqlStr, args, err := update.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	var p models.Payment
	err = tx.QueryRow(ctx, sqlStr, args...).Scan(&p.ID, &p.LeaseID, &p.Amount, &p.DueDate, &p.PaidAt, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrPaymentNotFound
		}
		log.Printf("Error recording payment %d: %v", paymentID, err)
		return nil, err
	}
	p.Method = method

	onTime := p.OnTime()

	status := models.PaymentLate
	if onTime {
		status = models.PaymentPaid
	}
	p.Status = status

	statusUpdate := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("payments").
		Set("status", status).
		Where(squirrel.Eq{"id": p.ID})

	statusSQL, statusArgs, err := statusUpdate.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	if _, err := tx.Exec(ctx, statusSQL, statusArgs...); err != nil {
		log.Printf("Error setting status for payment %d: %v", p.ID, err)
		return nil, err
	}

	points := models.PointsForPayment(onTime)
	onTimeInc := 0
	if onTime {
		onTimeInc = 1
	}

	accrual := `
        INSERT INTO loyalty_accounts (tenant_id, balance, on_time_count, total_count, updated_at)
        SELECT l.tenant_id, $2, $3, 1, NOW()
        FROM leases l WHERE l.id = $1
        ON CONFLICT (tenant_id) DO UPDATE SET
            balance = loyalty_accounts.balance + EXCLUDED.balance,
            on_time_count = loyalty_accounts.on_time_count + EXCLUDED.on_time_count,
            total_count = loyalty_accounts.total_count + 1,
            updated_at = NOW()
    `

	if _, err := tx.Exec(ctx, accrual, p.LeaseID, points, onTimeInc); err != nil {
		log.Printf("Error accruing loyalty points for payment %d: %v", p.ID, err)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("Error committing payment transaction: %v", err)
		return nil, err
	}

	log.Printf("Payment %d recorded as %s (+%d points)", p.ID, status, points)
	return &p, nil
}

func (ps *PaymentService) GetPaymentsByTenant(ctx context.Context, tenantID int) ([]models.Payment, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("p.id", "p.lease_id", "p.amount", "p.due_date", "p.paid_at", "p.method", "p.status", "p.created_at").
		From("payments p").
		Join("leases l ON l.id = p.lease_id").
		Where(squirrel.Eq{"l.tenant_id": tenantID}).
		OrderBy("p.due_date DESC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	rows, err := db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error getting payments for tenant %d: %v", tenantID, err)
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		err := rows.Scan(&p.ID, &p.LeaseID, &p.Amount, &p.DueDate, &p.PaidAt, &p.Method, &p.Status, &p.CreatedAt)
		if err != nil {
			log.Printf("Error scanning payment row: %v", err)
			continue
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (ps *PaymentService) GetPaymentsByLease(ctx context.Context, leaseID int) ([]models.Payment, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "lease_id", "amount", "due_date", "paid_at", "method", "status", "created_at").
		From("payments").
		Where(squirrel.Eq{"lease_id": leaseID}).
		OrderBy("due_date DESC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	rows, err := db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error getting payments for lease %d: %v", leaseID, err)
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		err := rows.Scan(&p.ID, &p.LeaseID, &p.Amount, &p.DueDate, &p.PaidAt, &p.Method, &p.Status, &p.CreatedAt)
		if err != nil {
			log.Printf("Error scanning payment row: %v", err)
			continue
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}
