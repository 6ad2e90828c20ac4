package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/charter-booking/charter-booking-service/internal/domain"
)

// uniqueViolation is the SQLSTATE of a unique constraint violation.
const uniqueViolation = "23505"

// idempotencyConstraint is the unique index on bookings.idempotency_key.
const idempotencyConstraint = "bookings_idempotency_key_key"

// DB is the subset of *pgxpool.Pool the store needs.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// queryRower runs a single-row query on a pool or a transaction.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// column is one name/value pair of an INSERT.
type column struct {
	name  string
	value any
}

// Store implements domain.BookingStore on PostgreSQL.
type Store struct {
	db DB
}

// NewStore creates a Store on top of a pool.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// InsertBooking implements domain.BookingStore.
func (s *Store) InsertBooking(ctx context.Context, rec domain.BookingRecord) (domain.BookingRecord, error) {
	err := s.withClaims(ctx, func(q queryRower) error {
		return insert(ctx, q, domain.TableBookings, bookingColumns(rec),
			[]string{"id", "created_at", "updated_at"},
			&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	})
	if err != nil {
		return domain.BookingRecord{}, mapError(domain.TableBookings, err)
	}
	return rec, nil
}

// InsertNotification implements domain.BookingStore.
func (s *Store) InsertNotification(ctx context.Context, n domain.NotificationRecord) (domain.NotificationRecord, error) {
	err := s.withClaims(ctx, func(q queryRower) error {
		return insert(ctx, q, domain.TableNotifications, notificationColumns(n),
			[]string{"id", "created_at"},
			&n.ID, &n.CreatedAt)
	})
	if err != nil {
		return domain.NotificationRecord{}, mapError(domain.TableNotifications, err)
	}
	return n, nil
}

// withClaims runs fn directly on the pool for anonymous calls. When ctx carries an identity,
// fn runs in a transaction whose request.jwt.claim.* settings expose the acting user to
// row-level security policies.
func (s *Store) withClaims(ctx context.Context, fn func(q queryRower) error) error {
	id, ok := domain.IdentityFromContext(ctx)
	if !ok {
		return fn(s.db)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// Rollback after Commit is a no-op.
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	var sub, email string
	if err := tx.QueryRow(ctx,
		`SELECT set_config('request.jwt.claim.sub', $1, true), set_config('request.jwt.claim.email', $2, true)`,
		id.UserID, id.Email,
	).Scan(&sub, &email); err != nil {
		return fmt.Errorf("set request claims: %w", err)
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// insert writes one row and scans the returning columns into dest.
func insert(ctx context.Context, q queryRower, table string, cols []column, returning []string, dest ...any) error {
	sql, args := buildInsert(table, cols, returning)
	return q.QueryRow(ctx, sql, args...).Scan(dest...)
}

// buildInsert renders INSERT INTO table (...) VALUES ($1, ...) RETURNING ... for cols.
func buildInsert(table string, cols []column, returning []string) (string, []any) {
	names := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		names[i] = c.name
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = c.value
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(names, ", "), strings.Join(placeholders, ", "))
	if len(returning) > 0 {
		b.WriteString(" RETURNING ")
		b.WriteString(strings.Join(returning, ", "))
	}
	return b.String(), args
}

func bookingColumns(rec domain.BookingRecord) []column {
	aviation := rec.AviationServices
	if aviation == nil {
		aviation = []string{}
	}
	luxury := rec.LuxuryServices
	if luxury == nil {
		luxury = []string{}
	}

	return []column{
		{"user_id", rec.UserID},
		{"origin_airport", rec.OriginAirport},
		{"destination_airport", rec.DestinationAirport},
		{"departure_date", rec.DepartureDate},
		{"departure_time", rec.DepartureTime},
		{"passengers", rec.Passengers},
		{"luggage", rec.Luggage},
		{"pets", rec.Pets},
		{"aircraft_category", rec.AircraftCategory},
		{"aviation_services", aviation},
		{"luxury_services", luxury},
		{"carbon_option", string(rec.CarbonOption)},
		{"carbon_nft_wallet", rec.CarbonNFTWallet},
		{"total_price", rec.TotalPrice},
		{"currency", rec.Currency},
		{"payment_method", string(rec.PaymentMethod)},
		{"contact_name", rec.ContactName},
		{"contact_email", rec.ContactEmail},
		{"contact_phone", rec.ContactPhone},
		{"contact_company", rec.ContactCompany},
		{"wallet_address", rec.WalletAddress},
		{"discount_percent", rec.DiscountPercent},
		{"nft_discount_applied", rec.NFTDiscountApplied},
		{"status", string(rec.Status)},
		{"idempotency_key", rec.IdempotencyKey},
	}
}

func notificationColumns(n domain.NotificationRecord) []column {
	return []column{
		{"user_id", n.UserID},
		{"booking_id", n.BookingID},
		{"kind", n.Kind},
		{"title", n.Title},
		{"message", n.Message},
		{"route", n.Route},
		{"departure_date", n.DepartureDate},
	}
}

// mapError turns driver errors into domain errors. The driver error is kept verbatim as the cause.
func mapError(table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == idempotencyConstraint {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateSubmission, pgErr.Detail)
	}
	return domain.NewPersistenceError(table, err)
}

// Ensure Store implements domain.BookingStore at compile time.
var _ domain.BookingStore = (*Store)(nil)
