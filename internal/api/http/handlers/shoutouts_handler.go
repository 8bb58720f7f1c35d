package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bragboard/internal/api/dto"
	"github.com/spec-kit/bragboard/internal/auth"
	"github.com/spec-kit/bragboard/internal/domain"
	"github.com/spec-kit/bragboard/internal/service"
	apperrors "github.com/spec-kit/bragboard/pkg/util/errorutil"
)

// ShoutoutsHandler manages the recognition feed endpoints.
type ShoutoutsHandler struct {
	shoutouts  *service.ShoutoutService
	reactions  *service.ReactionService
	comments   *service.CommentService
	moderation *service.ModerationService
	directory  *service.DirectoryService
}

// NewShoutoutsHandler constructs handler.
func NewShoutoutsHandler(shoutouts *service.ShoutoutService, reactions *service.ReactionService, comments *service.CommentService, moderation *service.ModerationService, directory *service.DirectoryService) *ShoutoutsHandler {
	return &ShoutoutsHandler{
		shoutouts:  shoutouts,
		reactions:  reactions,
		comments:   comments,
		moderation: moderation,
		directory:  directory,
	}
}

// Create POST /shoutouts.
func (h *ShoutoutsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateShoutoutRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	shoutout, err := h.shoutouts.Create(c.Context(), principal.User.ID, req.Message, req.RecipientIDs)
	if err != nil {
		return err
	}
	users, err := h.directory.Index(c.Context())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": shoutoutResponse(shoutout, users)})
}

// List GET /shoutouts.
func (h *ShoutoutsHandler) List(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	input := service.ShoutoutListInput{IncludeReported: true}
	if depts := c.Query("depts"); depts != "" {
		for _, part := range strings.Split(depts, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				input.Departments = append(input.Departments, trimmed)
			}
		}
	}
	if c.Query("include_reported") == "false" {
		input.IncludeReported = false
	}

	shoutouts, err := h.shoutouts.List(c.Context(), input)
	if err != nil {
		return err
	}
	users, err := h.directory.Index(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.ShoutoutResponse, 0, len(shoutouts))
	for i := range shoutouts {
		items = append(items, shoutoutResponse(&shoutouts[i], users))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /shoutouts/:id.
func (h *ShoutoutsHandler) Get(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	shoutout, err := h.shoutouts.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	users, err := h.directory.Index(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": shoutoutResponse(shoutout, users)})
}

// ToggleReaction POST /shoutouts/:id/reactions.
func (h *ShoutoutsHandler) ToggleReaction(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ToggleReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.reactions.Toggle(c.Context(), c.Params("id"), principal.User.ID, domain.ReactionType(req.ReactionType))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToggleReactionResponse{
		Action:   string(result.Action),
		NewCount: result.NewCount,
	}})
}

// AddComment POST /shoutouts/:id/comments.
func (h *ShoutoutsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.comments.Add(c.Context(), c.Params("id"), principal.User.ID, req.Text)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CommentResponse{
		ID:   comment.ID,
		Text: comment.Text,
		User: dto.UserSummary{
			ID:   principal.User.ID,
			Name: principal.User.Name,
		},
		CreatedAt: comment.CreatedAt,
	}})
}

// Report PUT /shoutouts/:id/report.
func (h *ShoutoutsHandler) Report(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	status, err := h.moderation.Report(c.Context(), c.Params("id"), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ReportResponse{Status: string(status)}})
}

func shoutoutResponse(shoutout *domain.Shoutout, users map[string]domain.User) dto.ShoutoutResponse {
	sender := dto.UserSummary{ID: shoutout.SenderID, Name: "Deleted User"}
	if user, ok := users[shoutout.SenderID]; ok {
		sender.Name = user.Name
		sender.Department = user.Department
	}

	recipients := make([]dto.UserSummary, 0, len(shoutout.RecipientIDs))
	for _, rid := range shoutout.RecipientIDs {
		summary := dto.UserSummary{ID: rid, Name: "Deleted User"}
		if user, ok := users[rid]; ok {
			summary.Name = user.Name
			summary.Department = user.Department
		}
		recipients = append(recipients, summary)
	}

	reactions := make(map[string]int, len(domain.ReactionTypes))
	for _, reactionType := range domain.ReactionTypes {
		reactions[string(reactionType)] = shoutout.ReactionCount(reactionType)
	}

	comments := make([]dto.CommentResponse, 0, len(shoutout.Comments))
	for _, comment := range shoutout.Comments {
		author := dto.UserSummary{ID: comment.AuthorID, Name: "Deleted User"}
		if user, ok := users[comment.AuthorID]; ok {
			author.Name = user.Name
		}
		comments = append(comments, dto.CommentResponse{
			ID:        comment.ID,
			Text:      comment.Text,
			User:      author,
			CreatedAt: comment.CreatedAt,
		})
	}

	return dto.ShoutoutResponse{
		ID:               shoutout.ID,
		Message:          shoutout.Message,
		Sender:           sender,
		Recipients:       recipients,
		Reactions:        reactions,
		Comments:         comments,
		ModerationStatus: string(shoutout.ModerationStatus),
		IsReported:       shoutout.ModerationStatus == domain.ModerationStatusReported,
		CreatedAt:        shoutout.CreatedAt,
	}
}
