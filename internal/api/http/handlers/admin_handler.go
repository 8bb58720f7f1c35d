package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bragboard/internal/api/dto"
	"github.com/spec-kit/bragboard/internal/auth"
	"github.com/spec-kit/bragboard/internal/domain"
	"github.com/spec-kit/bragboard/internal/service"
	apperrors "github.com/spec-kit/bragboard/pkg/util/errorutil"
)

// AdminHandler manages moderation actions, user lifecycle and reporting.
type AdminHandler struct {
	moderation  *service.ModerationService
	directory   *service.DirectoryService
	leaderboard *service.LeaderboardService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(moderation *service.ModerationService, directory *service.DirectoryService, leaderboard *service.LeaderboardService) *AdminHandler {
	return &AdminHandler{moderation: moderation, directory: directory, leaderboard: leaderboard}
}

// Leaderboard GET /leaderboard. Open to any authenticated user, not only
// admins; it is mounted outside the admin group.
func (h *AdminHandler) Leaderboard(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	board, err := h.leaderboard.Compute(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LeaderboardResponse{
		TopGivers:  leaderboardEntries(board.TopGivers),
		MostTagged: leaderboardEntries(board.MostTagged),
	}})
}

// Stats GET /admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.leaderboard.Stats(c.Context())
	if err != nil {
		return err
	}
	users, err := h.directory.Index(c.Context())
	if err != nil {
		return err
	}

	reported := make([]dto.ShoutoutResponse, 0, len(stats.ReportedPosts))
	for i := range stats.ReportedPosts {
		reported = append(reported, shoutoutResponse(&stats.ReportedPosts[i], users))
	}
	return c.JSON(fiber.Map{"data": dto.StatsResponse{
		TotalShoutouts:  stats.TotalShoutouts,
		TopGivers:       leaderboardEntries(stats.TopGivers),
		MostTagged:      leaderboardEntries(stats.MostTagged),
		DepartmentStats: stats.DepartmentCounts,
		ReportedPosts:   reported,
	}})
}

// Export GET /admin/export.
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	rows, err := h.leaderboard.ExportRows(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.ExportRowResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.ExportRowResponse{
			ShoutoutID:       row.ShoutoutID,
			SenderName:       row.SenderName,
			SenderDepartment: row.SenderDepartment,
			Message:          row.Message,
			CreatedAt:        row.CreatedAt,
			Reported:         row.Reported,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Dismiss PUT /admin/shoutouts/:id/dismiss.
func (h *AdminHandler) Dismiss(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	shoutout, err := h.moderation.Dismiss(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ReportResponse{Status: string(shoutout.ModerationStatus)}})
}

// DeleteShoutout DELETE /admin/shoutouts/:id.
func (h *AdminHandler) DeleteShoutout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.moderation.Delete(c.Context(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// CreateUser POST /admin/users.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.directory.CreateUser(c.Context(), principal.User.ID, service.CreateUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
		IsAdmin:    req.IsAdmin,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// DeleteUser DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.directory.DeleteUser(c.Context(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AuditLog GET /admin/audit-log.
func (h *AdminHandler) AuditLog(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	entries, err := h.directory.AuditLog(c.Context(), limit, offset)
	if err != nil {
		return err
	}

	items := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.AuditEntryResponse{
			ID:         entry.ID,
			AdminID:    entry.AdminID,
			Action:     string(entry.Action),
			TargetType: entry.TargetType,
			TargetID:   entry.TargetID,
			CreatedAt:  entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func leaderboardEntries(entries []domain.LeaderboardEntry) []dto.LeaderboardEntryResponse {
	out := make([]dto.LeaderboardEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.LeaderboardEntryResponse{
			UserID: entry.UserID,
			Name:   entry.Name,
			Count:  entry.Count,
		})
	}
	return out
}
