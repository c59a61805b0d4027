package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mandalnilabja/agentgate/internal/storage/models"
)

// RegisterAgent stores or replaces an agent registration keyed by path.
func (s *Storage) RegisterAgent(agent *models.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	if agent.Path == "" {
		return ErrInvalidInput
	}
	if agent.Name == "" {
		agent.Name = agent.Path
	}

	requirements, err := json.Marshal(agent.Requirements)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := time.Now().UTC()
	agent.CreatedAt = now

	_, err = s.db.Exec(`
		INSERT INTO agents (id, path, name, template_key, requirements, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET name = ?, template_key = ?, requirements = ?
	`, generateID("agent"), agent.Path, agent.Name, agent.TemplateKey, string(requirements), now,
		agent.Name, agent.TemplateKey, string(requirements))

	return err
}

// GetAgent retrieves an agent registration by path
func (s *Storage) GetAgent(path string) (*models.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	var agent models.Agent
	var requirements string

	err := s.db.QueryRow(`
		SELECT path, name, template_key, requirements, created_at
		FROM agents WHERE path = ?
	`, path).Scan(&agent.Path, &agent.Name, &agent.TemplateKey, &requirements, &agent.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(requirements), &agent.Requirements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &agent, nil
}

// ListAgents retrieves all registered agents
func (s *Storage) ListAgents() ([]*models.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	rows, err := s.db.Query(`
		SELECT path, name, template_key, requirements, created_at
		FROM agents ORDER BY path
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []*models.Agent
	for rows.Next() {
		var agent models.Agent
		var requirements string

		err := rows.Scan(&agent.Path, &agent.Name, &agent.TemplateKey, &requirements, &agent.CreatedAt)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(requirements), &agent.Requirements); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		agents = append(agents, &agent)
	}

	return agents, rows.Err()
}
