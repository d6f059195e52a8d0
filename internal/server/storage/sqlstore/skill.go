package sqlstore

import (
	"context"
	"fmt"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/patch"
	"github.com/iudanet/learnhub/internal/server/storage"
)

const skillColumns = `skill_id, title, xp`

func scanSkill(row scanner) (*models.Skill, error) {
	sk := &models.Skill{}
	if err := row.Scan(&sk.ID, &sk.Title, &sk.XP); err != nil {
		return nil, err
	}
	return sk, nil
}

// CreateSkill creates a new skill and assigns its ID
func (s *Store) CreateSkill(ctx context.Context, skill *models.Skill) error {
	query := `INSERT INTO skills (title, xp) VALUES (?, ?) RETURNING skill_id`

	if err := s.db.QueryRowContext(ctx, s.rebind(query), skill.Title, skill.XP).Scan(&skill.ID); err != nil {
		return s.wrap(err, "failed to insert skill")
	}

	return nil
}

// GetSkill retrieves skill by ID
func (s *Store) GetSkill(ctx context.Context, skillID int64) (*models.Skill, error) {
	query := `SELECT ` + skillColumns + ` FROM skills WHERE skill_id = ?`

	sk, err := scanSkill(s.db.QueryRowContext(ctx, s.rebind(query), skillID))
	if err != nil {
		return nil, s.wrap(err, "failed to get skill")
	}

	return sk, nil
}

// ListSkills returns all skills
func (s *Store) ListSkills(ctx context.Context) ([]*models.Skill, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY skill_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	skills := make([]*models.Skill, 0)
	for rows.Next() {
		sk, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, sk)
	}

	return skills, rows.Err()
}

// UpdateSkill applies a partial update
func (s *Store) UpdateSkill(ctx context.Context, skillID int64, upd *patch.Update) (*models.Skill, error) {
	query, args, err := s.updateQuery("skills", "skill_id", skillColumns, upd, skillID)
	if err != nil {
		return nil, err
	}

	sk, err := scanSkill(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, s.wrap(err, "failed to update skill")
	}

	return sk, nil
}

// DeleteSkill deletes skill by ID
func (s *Store) DeleteSkill(ctx context.Context, skillID int64) error {
	return s.execAffectingOne(ctx, `DELETE FROM skills WHERE skill_id = ?`, storage.ErrNotFound, skillID)
}
