package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Registration is one completed wizard run.
type Registration struct {
	ID        string
	Name      string
	Host      string
	Port      int
	Token     string
	Result    string
	CreatedAt time.Time
}

// RecordRegistration persists a completed registration and returns it with
// its generated ID.
func (s *Store) RecordRegistration(name, host string, port int, token, result string) (*Registration, error) {
	reg := &Registration{
		ID:        uuid.NewString(),
		Name:      name,
		Host:      host,
		Port:      port,
		Token:     token,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(`
		INSERT INTO registrations (id, name, host, port, token, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, reg.ID, reg.Name, reg.Host, reg.Port, reg.Token, reg.Result, reg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	return reg, nil
}

// RecentRegistrations returns the most recent registrations, newest first.
func (s *Store) RecentRegistrations(limit int) ([]*Registration, error) {
	rows, err := s.db.Query(`
		SELECT id, name, host, port, token, result, created_at
		FROM registrations
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query registrations: %w", err)
	}
	defer rows.Close()

	var regs []*Registration
	for rows.Next() {
		var reg Registration
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.Host, &reg.Port, &reg.Token, &reg.Result, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, &reg)
	}

	return regs, rows.Err()
}
