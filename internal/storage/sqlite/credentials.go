package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mandalnilabja/agentgate/internal/storage/models"
)

// SaveCredential stores or replaces a credential. The field map is
// serialized to JSON and encrypted before it touches disk.
func (s *Storage) SaveCredential(cred *models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	if cred.ID == "" || len(cred.Fields) == 0 {
		return ErrInvalidInput
	}
	if cred.DisplayName == "" {
		cred.DisplayName = cred.ID
	}

	plaintext, err := json.Marshal(cred.Fields)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	encrypted, err := s.encryptor.Encrypt(string(plaintext))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncryptionError, err)
	}

	now := time.Now().UTC()
	cred.UpdatedAt = now

	_, err = s.db.Exec(`
		INSERT INTO credentials (id, display_name, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET display_name = ?, data = ?, updated_at = ?
	`, cred.ID, cred.DisplayName, encrypted, now, now, cred.DisplayName, encrypted, now)

	return err
}

// GetCredential retrieves a credential by ID with decrypted fields
func (s *Storage) GetCredential(id string) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	var cred models.Credential
	var encrypted string

	err := s.db.QueryRow(`
		SELECT id, display_name, data, created_at, updated_at
		FROM credentials WHERE id = ?
	`, id).Scan(&cred.ID, &cred.DisplayName, &encrypted, &cred.CreatedAt, &cred.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.decryptFields(encrypted, &cred); err != nil {
		return nil, err
	}

	return &cred, nil
}

// ListCredentials retrieves all stored credentials
func (s *Storage) ListCredentials() ([]*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	rows, err := s.db.Query(`
		SELECT id, display_name, data, created_at, updated_at
		FROM credentials ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var credentials []*models.Credential
	for rows.Next() {
		var cred models.Credential
		var encrypted string

		err := rows.Scan(&cred.ID, &cred.DisplayName, &encrypted, &cred.CreatedAt, &cred.UpdatedAt)
		if err != nil {
			return nil, err
		}

		if err := s.decryptFields(encrypted, &cred); err != nil {
			return nil, err
		}

		credentials = append(credentials, &cred)
	}

	return credentials, rows.Err()
}

// DeleteCredential removes a credential by ID
func (s *Storage) DeleteCredential(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	result, err := s.db.Exec("DELETE FROM credentials WHERE id = ?", id)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// decryptFields decrypts and unmarshals the stored field map into cred
func (s *Storage) decryptFields(encrypted string, cred *models.Credential) error {
	plaintext, err := s.encryptor.Decrypt(encrypted)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncryptionError, err)
	}

	if err := json.Unmarshal([]byte(plaintext), &cred.Fields); err != nil {
		return fmt.Errorf("%w: %v", ErrEncryptionError, err)
	}

	return nil
}
