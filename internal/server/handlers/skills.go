package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/patch"
	"github.com/iudanet/learnhub/internal/server/storage"
	"github.com/iudanet/learnhub/pkg/api"
)

// SkillHandler обрабатывает справочник навыков
type SkillHandler struct {
	base
	skills storage.SkillStorage
}

// NewSkillHandler создает handler навыков
func NewSkillHandler(logger *slog.Logger, skills storage.SkillStorage) *SkillHandler {
	return &SkillHandler{base: base{logger: logger}, skills: skills}
}

// List обрабатывает GET /skill
func (h *SkillHandler) List(w http.ResponseWriter, r *http.Request) {
	skills, err := h.skills.ListSkills(r.Context())
	if err != nil {
		h.fail(r.Context(), w, err, "skill")
		return
	}
	h.send(w, http.StatusOK, "Skills retrieved successfully", "skills", skills)
}

// Get обрабатывает GET /skill/{skill_id}
func (h *SkillHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathInt64(r, "skill_id")
	if err != nil {
		h.fail(ctx, w, err, "skill")
		return
	}

	skill, err := h.skills.GetSkill(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "skill")
		return
	}
	h.send(w, http.StatusOK, "Skill retrieved successfully", "skill", skill)
}

// Create обрабатывает POST /skill
func (h *SkillHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateSkillRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, err, "skill")
		return
	}

	skill := &models.Skill{Title: strings.TrimSpace(req.Title), XP: req.XP}
	if err := h.skills.CreateSkill(ctx, skill); err != nil {
		h.fail(ctx, w, err, "skill")
		return
	}

	h.logger.InfoContext(ctx, "skill created", slog.Int64("skill_id", skill.ID))
	h.send(w, http.StatusCreated, "Skill created successfully", "skill", skill)
}

// Update обрабатывает PATCH /skill/{skill_id}
func (h *SkillHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathInt64(r, "skill_id")
	if err != nil {
		h.fail(ctx, w, err, "skill")
		return
	}

	current, err := h.skills.GetSkill(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "skill")
		return
	}

	applyPatch(h.base, w, r, skillSchema, current, "skill", "skill",
		func(ctx context.Context, upd *patch.Update) (*models.Skill, error) {
			return h.skills.UpdateSkill(ctx, id, upd)
		})
}

// Delete обрабатывает DELETE /skill/{skill_id}
func (h *SkillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathInt64(r, "skill_id")
	if err != nil {
		h.fail(ctx, w, err, "skill")
		return
	}

	if err := h.skills.DeleteSkill(ctx, id); err != nil {
		h.fail(ctx, w, err, "skill")
		return
	}
	h.send(w, http.StatusOK, "Skill deleted successfully", "", nil)
}
