package services

import (
	"context"
	"log"

	"ImmoGest/server/internal/db"
	"ImmoGest/server/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type PropertyService struct{}

func NewPropertyService() *PropertyService {
	return &PropertyService{}
}

func (ps *PropertyService) CreateBuilding(ctx context.Context, b *models.Building) (int, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("buildings").
		Columns("name", "address", "city", "postal_code").
		Values(b.Name, b.Address, b.City, b.PostalCode).
		Suffix("RETURNING id, created_at")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return 0, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		log.Printf("Error creating building: %v", err)
		return 0, err
	}

	log.Printf("Building created with ID %d", b.ID)
	return b.ID, nil
}

func (ps *PropertyService) GetBuildings(ctx context.Context) ([]models.Building, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "name", "address", "city", "postal_code", "created_at").
		From("buildings").
		OrderBy("name ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	rows, err := db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error getting buildings: %v", err)
		return nil, err
	}
	defer rows.Close()

	var buildings []models.Building
	for rows.Next() {
		var b models.Building
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.City, &b.PostalCode, &b.CreatedAt); err != nil {
			log.Printf("Error scanning building row: %v", err)
			continue
		}
		buildings = append(buildings, b)
	}

	return buildings, rows.Err()
}

func (ps *PropertyService) GetBuildingById(ctx context.Context, id int) (*models.Building, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "name", "address", "city", "postal_code", "created_at").
		From("buildings").
		Where(squirrel.Eq{"id": id})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	var b models.Building
	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&b.ID, &b.Name, &b.Address, &b.City, &b.PostalCode, &b.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrBuildingNotFound
		}
		log.Printf("Error getting building %d: %v", id, err)
		return nil, err
	}

	return &b, nil
}

func (ps *PropertyService) UpdateBuilding(ctx context.Context, b *models.Building) error {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("buildings").
		Set("name", b.Name).
		Set("address", b.Address).
		Set("city", b.City).
		Set("postal_code", b.PostalCode).
		Where(squirrel.Eq{"id": b.ID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	ct, err := db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error updating building %d: %v", b.ID, err)
		return err
	}
	if ct.RowsAffected() == 0 {
		return models.ErrBuildingNotFound
	}

	return nil
}

func (ps *PropertyService) DeleteBuilding(ctx context.Context, id int) error {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Delete("buildings").
		Where(squirrel.Eq{"id": id})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	ct, err := db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error deleting building %d: %v", id, err)
		return err
	}
	if ct.RowsAffected() == 0 {
		return models.ErrBuildingNotFound
	}

	log.Printf("Building %d deleted", id)
	return nil
}

func (ps *PropertyService) CreateApartment(ctx context.Context, a *models.Apartment) (int, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("apartments").
		Columns("building_id", "unit", "floor", "surface", "rooms", "rent", "status").
		Values(a.BuildingID, a.Unit, a.Floor, a.Surface, a.Rooms, a.Rent, models.ApartmentVacant).
		Suffix("RETURNING id, created_at")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return 0, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		log.Printf("Error creating apartment: %v", err)
		return 0, err
	}

	a.Status = models.ApartmentVacant
	log.Printf("Apartment created with ID %d in building %d", a.ID, a.BuildingID)
	return a.ID, nil
}

func (ps *PropertyService) GetApartmentsByBuilding(ctx context.Context, buildingID int) ([]models.Apartment, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "building_id", "unit", "floor", "surface", "rooms", "rent", "status", "created_at").
		From("apartments").
		Where(squirrel.Eq{"building_id": buildingID}).
		OrderBy("unit ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	rows, err := db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error getting apartments for building %d: %v", buildingID, err)
		return nil, err
	}
	defer rows.Close()

	var apartments []models.Apartment
	for rows.Next() {
		var a models.Apartment
		err := rows.Scan(&a.ID, &a.BuildingID, &a.Unit, &a.Floor, &a.Surface, &a.Rooms, &a.Rent, &a.Status, &a.CreatedAt)
		if err != nil {
			log.Printf("Error scanning apartment row: %v", err)
			continue
		}
		apartments = append(apartments, a)
	}

	return apartments, rows.Err()
}

func (ps *PropertyService) GetApartmentById(ctx context.Context, id int) (*models.Apartment, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "building_id", "unit", "floor", "surface", "rooms", "rent", "status", "created_at").
		From("apartments").
		Where(squirrel.Eq{"id": id})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	var a models.Apartment
	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&a.ID, &a.BuildingID, &a.Unit, &a.Floor,
		&a.Surface, &a.Rooms, &a.Rent, &a.Status, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrApartmentNotFound
		}
		log.Printf("Error getting apartment %d: %v", id, err)
		return nil, err
	}

	return &a, nil
}

func (ps *PropertyService) UpdateApartment(ctx context.Context, a *models.Apartment) error {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("apartments").
		Set("unit", a.Unit).
		Set("floor", a.Floor).
		Set("surface", a.Surface).
		Set("rooms", a.Rooms).
		Set("rent", a.Rent).
		Where(squirrel.Eq{"id": a.ID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	ct, err := db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error updating apartment %d: %v", a.ID, err)
		return err
	}
	if ct.RowsAffected() == 0 {
		return models.ErrApartmentNotFound
	}

	return nil
}

func (ps *PropertyService) DeleteApartment(ctx context.Context, id int) error {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Delete("apartments").
		Where(squirrel.Eq{"id": id})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	ct, err := db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error deleting apartment %d: %v", id, err)
		return err
	}
	if ct.RowsAffected() == 0 {
		return models.ErrApartmentNotFound
	}

	log.Printf("Apartment %d deleted", id)
	return nil
}

func (ps *PropertyService) SetApartmentStatus(ctx context.Context, id int, status string) error {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("apartments").
		Set("status", status).
		Where(squirrel.Eq{"id": id})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	ct, err := db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error updating apartment %d status: %v", id, err)
		return err
	}
	if ct.RowsAffected() == 0 {
		return models.ErrApartmentNotFound
	}

	log.Printf("Apartment %d marked %s", id, status)
	return nil
}
