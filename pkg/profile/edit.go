package profile

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrUnknownSection is returned when an edit names a section key that does
// not hold collection items.
var ErrUnknownSection = errors.New("unknown profile section")

// ErrInvalidItem marks an item payload that does not decode into the
// section's item type.
var ErrInvalidItem = errors.New("invalid profile item")

// sectionEditor applies item edits to one collection of a document.
type sectionEditor struct {
	add    func(d *Document, raw []byte) (id string, err error)
	update func(d *Document, id string, raw []byte) (err error)
	remove func(d *Document, id string) (err error)
	find   func(d *Document, id string) (found any, ok bool)
}

func editorFor[T any, P item[T]](field func(d *Document) *[]T) (e sectionEditor) {
	e.add = func(d *Document, raw []byte) (id string, err error) {
		var it T
		it, err = decodeItem[T](raw)
		if err != nil {
			return id, err
		}
		items := field(d)
		*items, id = AddItem[T, P](*items, it)
		return id, err
	}
	e.update = func(d *Document, id string, raw []byte) (err error) {
		var it T
		it, err = decodeItem[T](raw)
		if err != nil {
			return err
		}
		// The path names the item, whatever the body says
		P(&it).setItemID(id)
		items := field(d)
		*items, err = UpdateItem[T, P](*items, it)
		return err
	}
	e.remove = func(d *Document, id string) (err error) {
		items := field(d)
		*items, err = RemoveItem[T, P](*items, id)
		return err
	}
	e.find = func(d *Document, id string) (found any, ok bool) {
		found, ok = FindItem[T, P](*field(d), id)
		return found, ok
	}
	return e
}

func decodeItem[T any](raw []byte) (it T, err error) {
	err = json.Unmarshal(raw, &it)
	if err != nil {
		err = errors.Wrap(ErrInvalidItem, err.Error())
		return it, err
	}
	return it, err
}

//nolint:gochecknoglobals // fixed lookup table
var sectionEditors = map[SectionKey]sectionEditor{
	SectionWorkExperiences: editorFor(func(d *Document) *[]WorkExperience { return &d.WorkExperiences }),
	SectionEducation:       editorFor(func(d *Document) *[]Education { return &d.Education }),
	SectionProjects:        editorFor(func(d *Document) *[]Project { return &d.Projects }),
	SectionSkills:          editorFor(func(d *Document) *[]Skill { return &d.Skills }),
	SectionCertifications:  editorFor(func(d *Document) *[]Certification { return &d.Certifications }),
	SectionHonorsAwards:    editorFor(func(d *Document) *[]HonorAward { return &d.HonorsAwards }),
	SectionPublications:    editorFor(func(d *Document) *[]Publication { return &d.Publications }),
	SectionReferences:      editorFor(func(d *Document) *[]Reference { return &d.References }),
	SectionCustomSections:  editorFor(func(d *Document) *[]CustomSection { return &d.CustomSections }),
}

func editorOf(key SectionKey) (e sectionEditor, err error) {
	e, ok := sectionEditors[key]
	if !ok {
		err = errors.Wrapf(ErrUnknownSection, "%q", key)
		return e, err
	}
	return e, err
}

// AddSectionItem decodes raw as an item of the given section and appends it,
// assigning an ID when the payload has none. The section order is left as is.
func AddSectionItem(doc Document, key SectionKey, raw []byte) (out Document, id string, err error) {
	e, err := editorOf(key)
	if err != nil {
		return doc, id, err
	}
	out = doc.clone()
	id, err = e.add(&out, raw)
	if err != nil {
		return doc, id, err
	}
	return out, id, err
}

// UpdateSectionItem replaces the item with the given ID by the decoded raw
// payload, keeping its position and ID.
func UpdateSectionItem(doc Document, key SectionKey, id string, raw []byte) (out Document, err error) {
	e, err := editorOf(key)
	if err != nil {
		return doc, err
	}
	out = doc.clone()
	err = e.update(&out, id, raw)
	if err != nil {
		return doc, err
	}
	return out, err
}

// RemoveSectionItem deletes the item with the given ID from a section.
func RemoveSectionItem(doc Document, key SectionKey, id string) (out Document, err error) {
	e, err := editorOf(key)
	if err != nil {
		return doc, err
	}
	out = doc.clone()
	err = e.remove(&out, id)
	if err != nil {
		return doc, err
	}
	return out, err
}

// FindSectionItem returns the item with the given ID from a section.
func FindSectionItem(doc Document, key SectionKey, id string) (found any, err error) {
	e, err := editorOf(key)
	if err != nil {
		return found, err
	}
	found, ok := e.find(&doc, id)
	if !ok {
		err = errors.Wrapf(ErrItemNotFound, "%s %s", key, id)
		return found, err
	}
	return found, err
}
