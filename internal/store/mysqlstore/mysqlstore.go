// Package mysqlstore is the optional durable mirror: one flat table per
// entity collection keyed by id, upserted with REPLACE INTO.  Rosters and
// other list fields are stored as JSON columns since the mirror is a
// write-through copy for durability and reporting, not a query model.
package mysqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/dfquintero/eventia/internal/model"
)

// Store mirrors entity collections into MySQL.
type Store struct {
	db *sql.DB
}

// Open connects to MySQL, verifies the connection and ensures the mirror
// tables exist.
func Open(user, pass, host, port, name string) (*Store, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id VARCHAR(64) PRIMARY KEY,
		type VARCHAR(32) NOT NULL,
		capacity INT NOT NULL,
		organizer_id VARCHAR(64) NOT NULL,
		name VARCHAR(200) NOT NULL,
		description TEXT,
		location VARCHAR(200),
		starts_at DATETIME NOT NULL,
		ends_at DATETIME NOT NULL,
		status VARCHAR(16) NOT NULL,
		registered JSON,
		attended JSON,
		agenda JSON,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS organizers (
		id VARCHAR(64) PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		email VARCHAR(200) NOT NULL,
		phone VARCHAR(40),
		organization VARCHAR(200),
		department VARCHAR(200),
		years_experience INT NOT NULL,
		created_event_ids JSON,
		registered_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS participants (
		id VARCHAR(64) PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		email VARCHAR(200) NOT NULL,
		phone VARCHAR(40),
		company VARCHAR(200),
		job_title VARCHAR(200),
		interests JSON,
		vip BOOLEAN NOT NULL,
		registered_event_ids JSON,
		registered_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id VARCHAR(64) PRIMARY KEY,
		event_id VARCHAR(64) NOT NULL,
		participant_id VARCHAR(64) NOT NULL,
		type VARCHAR(16) NOT NULL,
		price BIGINT NOT NULL,
		purchased_at DATETIME NOT NULL,
		used BOOLEAN NOT NULL,
		used_at DATETIME NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id VARCHAR(64) PRIMARY KEY,
		ticket_id VARCHAR(64) NOT NULL,
		participant_id VARCHAR(64) NOT NULL,
		event_id VARCHAR(64) NOT NULL,
		base_amount BIGINT NOT NULL,
		method VARCHAR(32) NOT NULL,
		method_commission BIGINT NOT NULL,
		platform_commission BIGINT NOT NULL,
		total_amount BIGINT NOT NULL,
		status VARCHAR(16) NOT NULL,
		authorization_code VARCHAR(32),
		created_at DATETIME NOT NULL,
		approved_at DATETIME NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(64) PRIMARY KEY,
		email VARCHAR(200) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		role VARCHAR(16) NOT NULL,
		status VARCHAR(16) NOT NULL,
		profile_id VARCHAR(64),
		created_at DATETIME NOT NULL
	)`,
}

func (s *Store) ensureSchema(ctx context.Context) error {
	for _, q := range schema {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func jsonCol(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// SaveEvent upserts an event row.
func (s *Store) SaveEvent(ctx context.Context, e model.Event) error {
	const q = `REPLACE INTO events
		(id, type, capacity, organizer_id, name, description, location, starts_at, ends_at, status, registered, attended, agenda, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		e.ID, string(e.Type), e.Capacity, e.OrganizerID, e.Name, e.Description, e.Location,
		e.StartsAt, e.EndsAt, string(e.Status),
		jsonCol(e.Registered), jsonCol(e.Attended), jsonCol(e.Agenda),
		e.CreatedAt, e.UpdatedAt,
	)
	return err
}

// SaveOrganizer upserts an organizer row.
func (s *Store) SaveOrganizer(ctx context.Context, o model.Organizer) error {
	const q = `REPLACE INTO organizers
		(id, first_name, last_name, email, phone, organization, department, years_experience, created_event_ids, registered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		o.ID, o.FirstName, o.LastName, o.Email, o.Phone,
		o.Organization, o.Department, o.YearsExperience,
		jsonCol(o.CreatedEventIDs), o.RegisteredAt,
	)
	return err
}

// SaveParticipant upserts a participant row.
func (s *Store) SaveParticipant(ctx context.Context, p model.Participant) error {
	const q = `REPLACE INTO participants
		(id, first_name, last_name, email, phone, company, job_title, interests, vip, registered_event_ids, registered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		p.ID, p.FirstName, p.LastName, p.Email, p.Phone,
		p.Company, p.JobTitle, jsonCol(p.Interests), p.VIP,
		jsonCol(p.RegisteredEventIDs), p.RegisteredAt,
	)
	return err
}

// SaveTicket upserts a ticket row.
func (s *Store) SaveTicket(ctx context.Context, t model.Ticket) error {
	const q = `REPLACE INTO tickets
		(id, event_id, participant_id, type, price, purchased_at, used, used_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	var usedAt sql.NullTime
	if t.UsedAt != nil {
		usedAt = sql.NullTime{Time: *t.UsedAt, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, q,
		t.ID, t.EventID, t.ParticipantID, string(t.Type), t.Price, t.PurchasedAt, t.Used, usedAt,
	)
	return err
}

// SavePayment upserts a payment row.
func (s *Store) SavePayment(ctx context.Context, p model.Payment) error {
	const q = `REPLACE INTO payments
		(id, ticket_id, participant_id, event_id, base_amount, method, method_commission, platform_commission, total_amount, status, authorization_code, created_at, approved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var approvedAt sql.NullTime
	if p.ApprovedAt != nil {
		approvedAt = sql.NullTime{Time: *p.ApprovedAt, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, q,
		p.ID, p.TicketID, p.ParticipantID, p.EventID, p.BaseAmount, string(p.Method),
		p.MethodCommission, p.PlatformCommission, p.TotalAmount, string(p.Status),
		p.AuthorizationCode, p.CreatedAt, approvedAt,
	)
	return err
}

// SaveUser upserts an account row.
func (s *Store) SaveUser(ctx context.Context, u model.User) error {
	const q = `REPLACE INTO users
		(id, email, password_hash, role, status, profile_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		u.ID, u.Email, u.PasswordHash, u.Role, string(u.Status), u.ProfileID, u.CreatedAt,
	)
	return err
}

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }
