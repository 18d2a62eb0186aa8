package server

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/nikogura/cvforge/pkg/export"
	"github.com/nikogura/cvforge/pkg/jd"
	"github.com/nikogura/cvforge/pkg/llm"
	"github.com/nikogura/cvforge/pkg/ordering"
	"github.com/nikogura/cvforge/pkg/profile"
	"github.com/nikogura/cvforge/pkg/render"
)

type orderRequest struct {
	Preference string `json:"preference"`
}

type orderResponse struct {
	ordering.Result
	Saved   bool   `json:"saved"`
	Warning string `json:"warning,omitempty"`
}

type latexRequest struct {
	JobDescription string `json:"job_description,omitempty"`
}

func (s *Server) getProfile(c *fiber.Ctx) error {
	doc, err := s.Store.Load(c.UserContext(), c.Params("user"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(doc)
}

// putProfile replaces the stored snapshot. The body is schema-checked, items
// without ids get one and the section order is reconciled before saving.
func (s *Server) putProfile(c *fiber.Ctx) error {
	doc, err := profile.Decode(c.Body())
	if err != nil {
		return s.fail(c, err)
	}

	doc.UserID = c.Params("user")
	doc, assigned := profile.EnsureItemIDs(doc)
	doc = doc.WithSectionOrder(ordering.ReconcileDocument(doc))

	doc, err = s.Store.Save(c.UserContext(), doc)
	if err != nil {
		return s.fail(c, err)
	}

	s.Logger.WithField("user", doc.UserID).WithField("assigned_ids", assigned).Info("profile saved")
	return c.JSON(doc)
}

func (s *Server) deleteProfile(c *fiber.Ctx) error {
	err := s.Store.Delete(c.UserContext(), c.Params("user"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// postOrder resolves a preference into a new section order and saves it.
// When the suggestion fails the stored order is reported and left untouched.
func (s *Server) postOrder(c *fiber.Ctx) error {
	var req orderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid payload"})
		}
	}

	ctx := c.UserContext()
	doc, err := s.Store.Load(ctx, c.Params("user"))
	if err != nil {
		return s.fail(c, err)
	}

	result, resolveErr := s.Resolver.Resolve(ctx, doc, req.Preference)
	if resolveErr != nil {
		s.Logger.WithError(resolveErr).WithField("user", doc.UserID).Warn("keeping stored section order")
		return c.JSON(orderResponse{Result: result, Warning: resolveErr.Error()})
	}

	_, err = s.Store.Save(ctx, doc.WithSectionOrder(result.Order))
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(orderResponse{Result: result, Saved: true})
}

func (s *Server) getRender(c *fiber.Ctx) error {
	target, err := render.ParseTarget(c.Query("target", string(render.TargetPlainText)))
	if err != nil {
		return s.fail(c, err)
	}

	doc, err := s.Store.Load(c.UserContext(), c.Params("user"))
	if err != nil {
		return s.fail(c, err)
	}

	out, err := render.RenderDocument(doc, target)
	if err != nil {
		return s.fail(c, err)
	}

	if target == render.TargetStyledMarkup {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	} else {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	}
	return c.SendString(out)
}

func (s *Server) getExport(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Query("format", string(export.FormatMarkdown)))
	if err != nil {
		return s.fail(c, err)
	}

	doc, err := s.Store.Load(c.UserContext(), c.Params("user"))
	if err != nil {
		return s.fail(c, err)
	}

	artifact, err := s.Exporter.Export(c.UserContext(), doc, format)
	if err != nil {
		return s.fail(c, err)
	}

	c.Set(fiber.HeaderContentType, artifact.MIMEType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	return c.Send(artifact.Data)
}

// postLatex hands the escaped LaTeX prompt text to the generator and returns
// the document it produces.
func (s *Server) postLatex(c *fiber.Ctx) error {
	if s.Generator == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(errorResponse{Error: "LaTeX generation is not configured"})
	}

	var req latexRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid payload"})
		}
	}

	ctx := c.UserContext()
	doc, err := s.Store.Load(ctx, c.Params("user"))
	if err != nil {
		return s.fail(c, err)
	}

	text, err := render.RenderDocument(doc, render.TargetLatexPrompt)
	if err != nil {
		return s.fail(c, err)
	}

	document, err := s.Generator.GenerateLatex(ctx, llm.LatexRequest{
		ProfileText:    text,
		JobDescription: jd.CapContent(strings.TrimSpace(req.JobDescription)),
	})
	if err != nil {
		s.Logger.WithError(err).WithField("user", doc.UserID).Error("LaTeX generation failed")
		return c.Status(fiber.StatusBadGateway).JSON(errorResponse{Error: errors.Wrap(err, "LaTeX generation failed").Error()})
	}

	c.Set(fiber.HeaderContentType, "application/x-latex")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename(doc.Contact.DisplayName(), "tex")))
	return c.SendString(document)
}
