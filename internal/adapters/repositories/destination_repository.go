package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"travel-matrix-service/internal/domain"
	"travel-matrix-service/internal/platform/db"
	"travel-matrix-service/internal/platform/obs"

	"github.com/go-kit/log"
)

// SQLDestinationRepository stores the destination list in a SQL table and
// implements ports.DestinationSource. Row order is kept in the position
// column.
type SQLDestinationRepository struct {
	DB     *sql.DB
	driver string
	logger log.Logger
}

func NewSQLDestinationRepository(conn *sql.DB, driver string, logger log.Logger) *SQLDestinationRepository {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &SQLDestinationRepository{DB: conn, driver: driver, logger: logger}
}

// bind returns the n-th (1-based) placeholder for the repository's driver.
func (s *SQLDestinationRepository) bind(n int) string {
	if s.driver == db.DriverSQLite {
		return "?"
	}
	return fmt.Sprintf("$%d", n)
}

// ListDestinations returns all stored destinations in position order.
func (s *SQLDestinationRepository) ListDestinations(ctx context.Context) (_ []domain.Destination, err error) {
	defer obs.Time(ctx, s.logger, "destinations.List")(&err)

	if s.DB == nil {
		return nil, errors.New("list destinations: DB is nil")
	}

	query := `
	SELECT
		company,
		address
	FROM destinations
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list destinations: query destinations table: %w", err)
	}
	defer rows.Close()

	destinations := make([]domain.Destination, 0, 64)
	for rows.Next() {
		var company, address string
		if err := rows.Scan(&company, &address); err != nil {
			return nil, fmt.Errorf("list destinations: scan row: %w", err)
		}
		destinations = append(destinations, domain.Destination{Company: company, Address: address})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list destinations: row iteration: %w", err)
	}

	return destinations, nil
}

// ReplaceDestinations swaps the stored list for destinations in one
// transaction.
func (s *SQLDestinationRepository) ReplaceDestinations(ctx context.Context, destinations []domain.Destination) (err error) {
	defer obs.Time(ctx, s.logger, "destinations.Replace")(&err)

	if s.DB == nil {
		return errors.New("replace destinations: DB is nil")
	}

	rows := make([]domain.Destination, 0, len(destinations))
	for i, d := range destinations {
		company := strings.TrimSpace(d.Company)
		address := domain.NormalizeAddress(d.Address)
		if company == "" || address == "" {
			return &domain.MalformedInputError{
				Reason: fmt.Sprintf("destination %d: company and address must not be empty", i+1),
			}
		}
		rows = append(rows, domain.Destination{Company: company, Address: address})
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace destinations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM destinations;`); err != nil {
		return fmt.Errorf("replace destinations: clear table: %w", err)
	}

	query := fmt.Sprintf(`
	INSERT INTO destinations (
		position,
		company,
		address
	)
	VALUES (%s, %s, %s);
	`, s.bind(1), s.bind(2), s.bind(3))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("replace destinations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, d := range rows {
		if _, err := stmt.ExecContext(ctx, i+1, d.Company, d.Address); err != nil {
			return fmt.Errorf("replace destinations: insert position=%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace destinations: commit tx: %w", err)
	}

	return nil
}
