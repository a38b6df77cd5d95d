package services

import (
	"context"
	"log"

	"ImmoGest/server/internal/db"
	"ImmoGest/server/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type LoyaltyService struct{}

func NewLoyaltyService() *LoyaltyService {
	return &LoyaltyService{}
}

// GetSummary returns a tenant's balance, tier and punctuality score. A
// tenant with no settled payments yet gets the zero-value Bronze summary.
func (ls *LoyaltyService) GetSummary(ctx context.Context, tenantID int) (*models.LoyaltySummary, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("balance", "on_time_count", "total_count").
		From("loyalty_accounts").
		Where(squirrel.Eq{"tenant_id": tenantID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	summary := models.LoyaltySummary{TenantID: tenantID}
	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&summary.Balance, &summary.OnTimeCount, &summary.TotalCount)
	if err != nil && err != pgx.ErrNoRows {
		log.Printf("Error getting loyalty account for tenant %d: %v", tenantID, err)
		return nil, err
	}

	summary.Tier = models.TierForBalance(summary.Balance)
	summary.Punctuality = models.PunctualityScore(summary.OnTimeCount, summary.TotalCount)

	return &summary, nil
}
