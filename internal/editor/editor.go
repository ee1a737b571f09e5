// Package editor owns the in-memory resume document and exposes per-section edits.
package editor

import (
	"sync"

	"github.com/jonathan/careerforge/internal/types"
)

// List names used in errors
const (
	ListEducation      = "education"
	ListProjects       = "projects"
	ListCertifications = "certifications"
	ListAchievements   = "achievements"
)

// Observer receives a snapshot of the document after every mutation
type Observer func(doc *types.ResumeDocument)

// Editor is the single owner of the mutable ResumeDocument.
// All mutations go through its methods; readers get deep copies.
type Editor struct {
	mu        sync.RWMutex
	notifyMu  sync.Mutex
	doc       *types.ResumeDocument
	observers []Observer
}

// New creates an editor around doc. A nil doc starts from the default sample.
func New(doc *types.ResumeDocument) *Editor {
	if doc == nil {
		doc = types.DefaultResumeDocument()
	}
	return &Editor{doc: normalized(doc)}
}

// Subscribe registers an observer for document mutations. Observers run in
// mutation order and must not call back into the editor's mutating methods.
func (e *Editor) Subscribe(fn Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, fn)
}

// Snapshot returns a deep copy of the current document
func (e *Editor) Snapshot() *types.ResumeDocument {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Clone()
}

// Replace swaps the whole document and notifies observers. Empty or
// repeated item ids are replaced with fresh ones.
func (e *Editor) Replace(doc *types.ResumeDocument) {
	if doc == nil {
		doc = types.DefaultResumeDocument()
	}
	_ = e.mutate(func(d *types.ResumeDocument) error {
		*d = *normalized(doc)
		return nil
	})
}

// Restore swaps the whole document without notifying observers.
// It is used when the document comes from the store.
func (e *Editor) Restore(doc *types.ResumeDocument) {
	if doc == nil {
		doc = types.DefaultResumeDocument()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = normalized(doc)
}

// Reset runs clearStore and, if it succeeds, swaps in doc without notifying
// observers. It waits for observers of earlier mutations to return, and no
// mutation can run between clearStore and the swap.
func (e *Editor) Reset(doc *types.ResumeDocument, clearStore func() error) error {
	if doc == nil {
		doc = types.DefaultResumeDocument()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()

	if err := clearStore(); err != nil {
		return err
	}
	e.doc = normalized(doc)
	return nil
}

// SetPersonalInfo replaces the header block
func (e *Editor) SetPersonalInfo(info types.PersonalInfo) {
	_ = e.mutate(func(d *types.ResumeDocument) error {
		d.PersonalInfo = info
		return nil
	})
}

// SetTechnicalSkills replaces the skills block
func (e *Editor) SetTechnicalSkills(skills types.TechnicalSkills) {
	_ = e.mutate(func(d *types.ResumeDocument) error {
		d.TechnicalSkills = skills
		return nil
	})
}

// AddEducation appends an entry with a fresh id and returns it
func (e *Editor) AddEducation(item types.Education) (types.Education, error) {
	if !item.ScoreType.Valid() {
		return types.Education{}, &InvalidScoreTypeError{Value: string(item.ScoreType)}
	}
	item.ID = types.NewID()
	_ = e.mutate(func(d *types.ResumeDocument) error {
		d.Education = append(d.Education, item)
		return nil
	})
	return item, nil
}

// UpdateEducation overwrites the entry with the given id, keeping its id
func (e *Editor) UpdateEducation(id string, item types.Education) error {
	if !item.ScoreType.Valid() {
		return &InvalidScoreTypeError{Value: string(item.ScoreType)}
	}
	item.ID = id
	return e.mutate(func(d *types.ResumeDocument) error {
		i := indexOf(d.Education, id, func(v types.Education) string { return v.ID })
		if i < 0 {
			return &ItemNotFoundError{List: ListEducation, ID: id}
		}
		d.Education[i] = item
		return nil
	})
}

// RemoveEducation deletes the entry with the given id
func (e *Editor) RemoveEducation(id string) error {
	return e.mutate(func(d *types.ResumeDocument) error {
		i := indexOf(d.Education, id, func(v types.Education) string { return v.ID })
		if i < 0 {
			return &ItemNotFoundError{List: ListEducation, ID: id}
		}
		d.Education = removeAt(d.Education, i)
		return nil
	})
}

// AddProject appends a project with a fresh id and returns it
func (e *Editor) AddProject(item types.Project) types.Project {
	item.ID = types.NewID()
	item.Description = append([]string{}, item.Description...)
	_ = e.mutate(func(d *types.ResumeDocument) error {
		d.Projects = append(d.Projects, item)
		return nil
	})
	return item
}

// UpdateProject overwrites the project with the given id, keeping its id
func (e *Editor) UpdateProject(id string, item types.Project) error {
	item.ID = id
	item.Description = append([]string{}, item.Description...)
	return e.mutate(func(d *types.ResumeDocument) error {
		i := indexOf(d.Projects, id, func(v types.Project) string { return v.ID })
		if i < 0 {
			return &ItemNotFoundError{List: ListProjects, ID: id}
		}
		d.Projects[i] = item
		return nil
	})
}

// RemoveProject deletes the project with the given id
func (e *Editor) RemoveProject(id string) error {
	return e.mutate(func(d *types.ResumeDocument) error {
		i := indexOf(d.Projects, id, func(v types.Project) string { return v.ID })
		if i < 0 {
			return &ItemNotFoundError{List: ListProjects, ID: id}
		}
		d.Projects = removeAt(d.Projects, i)
		return nil
	})
}

// AddProjectBullet appends a description bullet to a project
func (e *Editor) AddProjectBullet(projectID, text string) error {
	return e.mutate(func(d *types.ResumeDocument) error {
		i := indexOf(d.Projects, projectID, func(v types.Project) string { return v.ID })
		if i < 0 {
			return &ItemNotFoundError{List: ListProjects, ID: projectID}
		}
		d.Projects[i].Description = append(d.Projects[i].Description, text)
		return nil
	})
}

// UpdateProjectBullet overwrites one description bullet of a project
func (e *Editor) UpdateProjectBullet(projectID string, index int, text string) error {
	return e.mutate(func(d *types.ResumeDocument) error {
		i := indexOf(d.Projects, projectID, func(v types.Project) string { return v.ID })
		if i < 0 {
			return &ItemNotFoundError{List: ListProjects, ID: projectID}
		}
		bullets := d.Projects[i].Description
		if index < 0 || index >= len(bullets) {
			return &BulletIndexError{ProjectID: projectID, Index: index, Len: len(bullets)}
		}
		bullets[index] = text
		return nil
	})
}

// RemoveProjectBullet deletes one description bullet of a project
func (e *Editor) RemoveProjectBullet(projectID string, index int) error {
	return e.mutate(func(d *types.ResumeDocument) error {
		i := indexOf(d.Projects, projectID, func(v types.Project) string { return v.ID })
		if i < 0 {
			return &ItemNotFoundError{List: ListProjects, ID: projectID}
		}
		bullets := d.Projects[i].Description
		if index < 0 || index >= len(bullets) {
			return &BulletIndexError{ProjectID: projectID, Index: index, Len: len(bullets)}
		}
		d.Projects[i].Description = removeAt(bullets, index)
		return nil
	})
}

// AddCertification appends a certification with a fresh id and returns it
func (e *Editor) AddCertification(item types.Certification) types.Certification {
	item.ID = types.NewID()
	_ = e.mutate(func(d *types.ResumeDocument) error {
		d.Certifications = append(d.Certifications, item)
		return nil
	})
	return item
}

// UpdateCertification overwrites the certification with the given id
func (e *Editor) UpdateCertification(id string, item types.Certification) error {
	item.ID = id
	return e.mutate(func(d *types.ResumeDocument) error {
		i := indexOf(d.Certifications, id, func(v types.Certification) string { return v.ID })
		if i < 0 {
			return &ItemNotFoundError{List: ListCertifications, ID: id}
		}
		d.Certifications[i] = item
		return nil
	})
}

// RemoveCertification deletes the certification with the given id
func (e *Editor) RemoveCertification(id string) error {
	return e.mutate(func(d *types.ResumeDocument) error {
		i := indexOf(d.Certifications, id, func(v types.Certification) string { return v.ID })
		if i < 0 {
			return &ItemNotFoundError{List: ListCertifications, ID: id}
		}
		d.Certifications = removeAt(d.Certifications, i)
		return nil
	})
}

// AddAchievement appends an achievement with a fresh id and returns it
func (e *Editor) AddAchievement(item types.Achievement) types.Achievement {
	item.ID = types.NewID()
	_ = e.mutate(func(d *types.ResumeDocument) error {
		d.Achievements = append(d.Achievements, item)
		return nil
	})
	return item
}

// UpdateAchievement overwrites the achievement with the given id
func (e *Editor) UpdateAchievement(id string, item types.Achievement) error {
	item.ID = id
	return e.mutate(func(d *types.ResumeDocument) error {
		i := indexOf(d.Achievements, id, func(v types.Achievement) string { return v.ID })
		if i < 0 {
			return &ItemNotFoundError{List: ListAchievements, ID: id}
		}
		d.Achievements[i] = item
		return nil
	})
}

// RemoveAchievement deletes the achievement with the given id
func (e *Editor) RemoveAchievement(id string) error {
	return e.mutate(func(d *types.ResumeDocument) error {
		i := indexOf(d.Achievements, id, func(v types.Achievement) string { return v.ID })
		if i < 0 {
			return &ItemNotFoundError{List: ListAchievements, ID: id}
		}
		d.Achievements = removeAt(d.Achievements, i)
		return nil
	})
}

// mutate applies fn under the write lock and, if it succeeds, notifies
// observers with a snapshot of the result. notifyMu is taken before mu is
// released so observers see snapshots in mutation order.
func (e *Editor) mutate(fn func(d *types.ResumeDocument) error) error {
	e.mu.Lock()
	if err := fn(e.doc); err != nil {
		e.mu.Unlock()
		return err
	}
	snapshot := e.doc.Clone()
	observers := append([]Observer(nil), e.observers...)
	e.notifyMu.Lock()
	e.mu.Unlock()
	defer e.notifyMu.Unlock()

	for _, fn := range observers {
		fn(snapshot.Clone())
	}
	return nil
}

func normalized(doc *types.ResumeDocument) *types.ResumeDocument {
	out := doc.Clone()
	out.NormalizeIDs()
	return out
}

func indexOf[T any](items []T, id string, key func(T) string) int {
	for i, item := range items {
		if key(item) == id {
			return i
		}
	}
	return -1
}

func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}
