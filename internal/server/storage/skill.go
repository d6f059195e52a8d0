package storage

import (
	"context"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/patch"
)

// SkillStorage defines interface for the skill catalogue
type SkillStorage interface {
	// CreateSkill assigns skill.ID
	CreateSkill(ctx context.Context, skill *models.Skill) error
	GetSkill(ctx context.Context, skillID int64) (*models.Skill, error)
	ListSkills(ctx context.Context) ([]*models.Skill, error)
	UpdateSkill(ctx context.Context, skillID int64, upd *patch.Update) (*models.Skill, error)
	DeleteSkill(ctx context.Context, skillID int64) error
}
