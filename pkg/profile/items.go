package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrItemNotFound is returned when no collection item carries the given ID.
var ErrItemNotFound = errors.New("profile item not found")

// NewItemID returns a fresh stable identifier for a collection item.
func NewItemID() (id string) {
	id = uuid.NewString()
	return id
}

// New creates an empty document for a user.
func New(userID string) (doc Document) {
	doc = Document{
		ID:        NewItemID(),
		UserID:    userID,
		UpdatedAt: time.Now().UTC(),
	}
	return doc
}

// item is satisfied by pointers to every collection element type.
type item[T any] interface {
	*T
	ItemID() string
	setItemID(id string)
}

// AddItem appends a copy of it to items, assigning a new ID when it has none.
// The input slice is not modified.
func AddItem[T any, P item[T]](items []T, it T) (out []T, id string) {
	p := P(&it)
	if p.ItemID() == "" {
		p.setItemID(NewItemID())
	}
	out = make([]T, 0, len(items)+1)
	out = append(out, items...)
	out = append(out, it)
	id = p.ItemID()
	return out, id
}

// UpdateItem replaces the element with the same ID as it, keeping its
// position. IDs are immutable so the match is the only thing that links the
// old and new values.
func UpdateItem[T any, P item[T]](items []T, it T) (out []T, err error) {
	id := P(&it).ItemID()
	idx := indexOf[T, P](items, id)
	if idx < 0 {
		err = errors.Wrapf(ErrItemNotFound, "update %s", id)
		return items, err
	}
	out = make([]T, len(items))
	copy(out, items)
	out[idx] = it
	return out, err
}

// RemoveItem deletes the element with the given ID. Remaining elements keep
// their relative order.
func RemoveItem[T any, P item[T]](items []T, id string) (out []T, err error) {
	idx := indexOf[T, P](items, id)
	if idx < 0 {
		err = errors.Wrapf(ErrItemNotFound, "remove %s", id)
		return items, err
	}
	out = make([]T, 0, len(items)-1)
	out = append(out, items[:idx]...)
	out = append(out, items[idx+1:]...)
	return out, err
}

// FindItem returns the element with the given ID.
func FindItem[T any, P item[T]](items []T, id string) (found T, ok bool) {
	idx := indexOf[T, P](items, id)
	if idx < 0 {
		return found, ok
	}
	found = items[idx]
	ok = true
	return found, ok
}

func indexOf[T any, P item[T]](items []T, id string) (idx int) {
	idx = -1
	if id == "" {
		return idx
	}
	for i := range items {
		if P(&items[i]).ItemID() == id {
			idx = i
			return idx
		}
	}
	return idx
}

// ensureIDs assigns IDs in place to elements that have none.
func ensureIDs[T any, P item[T]](items []T) (assigned int) {
	for i := range items {
		p := P(&items[i])
		if p.ItemID() == "" {
			p.setItemID(NewItemID())
			assigned++
		}
	}
	return assigned
}

// EnsureItemIDs returns a copy of doc where every collection element has an
// ID. Imported documents often arrive without them.
func EnsureItemIDs(doc Document) (out Document, assigned int) {
	out = doc.clone()
	if out.ID == "" {
		out.ID = NewItemID()
	}
	assigned += ensureIDs(out.WorkExperiences)
	assigned += ensureIDs(out.Projects)
	assigned += ensureIDs(out.Education)
	assigned += ensureIDs(out.Skills)
	assigned += ensureIDs(out.Certifications)
	assigned += ensureIDs(out.HonorsAwards)
	assigned += ensureIDs(out.Publications)
	assigned += ensureIDs(out.References)
	assigned += ensureIDs(out.CustomSections)
	return out, assigned
}

// WithSectionOrder returns a copy of doc carrying the given order. The order
// should come from the reconciler.
func (d Document) WithSectionOrder(order []SectionKey) (out Document) {
	out = d.clone()
	out.SectionOrder = append([]SectionKey(nil), order...)
	return out
}

// clone copies the top-level collections so edits to the copy never reach
// the original's backing arrays.
func (d Document) clone() (out Document) {
	out = d
	out.WorkExperiences = cloneSlice(d.WorkExperiences)
	out.Projects = cloneSlice(d.Projects)
	out.Education = cloneSlice(d.Education)
	out.Skills = cloneSlice(d.Skills)
	out.Certifications = cloneSlice(d.Certifications)
	out.HonorsAwards = cloneSlice(d.HonorsAwards)
	out.Publications = cloneSlice(d.Publications)
	out.References = cloneSlice(d.References)
	out.CustomSections = cloneSlice(d.CustomSections)
	out.SectionOrder = cloneSlice(d.SectionOrder)
	return out
}

func cloneSlice[T any](in []T) (out []T) {
	if in == nil {
		return out
	}
	out = make([]T, len(in))
	copy(out, in)
	return out
}

// ItemID returns the work experience ID.
func (w WorkExperience) ItemID() string { return w.ID }

func (w *WorkExperience) setItemID(id string) { w.ID = id }

// ItemID returns the project ID.
func (p Project) ItemID() string { return p.ID }

func (p *Project) setItemID(id string) { p.ID = id }

// ItemID returns the education entry ID.
func (e Education) ItemID() string { return e.ID }

func (e *Education) setItemID(id string) { e.ID = id }

// ItemID returns the skill ID.
func (s Skill) ItemID() string { return s.ID }

func (s *Skill) setItemID(id string) { s.ID = id }

// ItemID returns the certification ID.
func (c Certification) ItemID() string { return c.ID }

func (c *Certification) setItemID(id string) { c.ID = id }

// ItemID returns the honor/award ID.
func (h HonorAward) ItemID() string { return h.ID }

func (h *HonorAward) setItemID(id string) { h.ID = id }

// ItemID returns the publication ID.
func (p Publication) ItemID() string { return p.ID }

func (p *Publication) setItemID(id string) { p.ID = id }

// ItemID returns the reference ID.
func (r Reference) ItemID() string { return r.ID }

func (r *Reference) setItemID(id string) { r.ID = id }

// ItemID returns the custom section ID.
func (c CustomSection) ItemID() string { return c.ID }

func (c *CustomSection) setItemID(id string) { c.ID = id }
