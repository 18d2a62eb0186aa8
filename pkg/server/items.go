package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nikogura/cvforge/pkg/profile"
)

type itemResponse struct {
	ID      string           `json:"id"`
	Profile profile.Document `json:"profile"`
}

// sectionParam reads the :section path parameter. Foreign keys pass through
// so the edit reports them as unknown.
func sectionParam(c *fiber.Ctx) (key profile.SectionKey) {
	key, _ = profile.ParseSectionKey(c.Params("section"))
	return key
}

func (s *Server) getItem(c *fiber.Ctx) error {
	doc, err := s.Store.Load(c.UserContext(), c.Params("user"))
	if err != nil {
		return s.fail(c, err)
	}

	found, err := profile.FindSectionItem(doc, sectionParam(c), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(found)
}

// postItem appends one item to a section. The stored section order is not
// touched; renders reconcile it against the sections that hold content.
func (s *Server) postItem(c *fiber.Ctx) error {
	ctx := c.UserContext()
	doc, err := s.Store.Load(ctx, c.Params("user"))
	if err != nil {
		return s.fail(c, err)
	}

	doc, id, err := profile.AddSectionItem(doc, sectionParam(c), c.Body())
	if err != nil {
		return s.fail(c, err)
	}

	doc, err = s.Store.Save(ctx, doc)
	if err != nil {
		return s.fail(c, err)
	}

	s.Logger.WithField("user", doc.UserID).WithField("item", id).Info("profile item added")
	return c.Status(fiber.StatusCreated).JSON(itemResponse{ID: id, Profile: doc})
}

func (s *Server) putItem(c *fiber.Ctx) error {
	ctx := c.UserContext()
	doc, err := s.Store.Load(ctx, c.Params("user"))
	if err != nil {
		return s.fail(c, err)
	}

	id := c.Params("id")
	doc, err = profile.UpdateSectionItem(doc, sectionParam(c), id, c.Body())
	if err != nil {
		return s.fail(c, err)
	}

	doc, err = s.Store.Save(ctx, doc)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(itemResponse{ID: id, Profile: doc})
}

func (s *Server) deleteItem(c *fiber.Ctx) error {
	ctx := c.UserContext()
	doc, err := s.Store.Load(ctx, c.Params("user"))
	if err != nil {
		return s.fail(c, err)
	}

	doc, err = profile.RemoveSectionItem(doc, sectionParam(c), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}

	_, err = s.Store.Save(ctx, doc)
	if err != nil {
		return s.fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
