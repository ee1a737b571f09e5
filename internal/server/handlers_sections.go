package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/careerforge/internal/editor"
	"github.com/jonathan/careerforge/internal/types"
)

// BulletRequest is the body of the project bullet endpoints
type BulletRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	addItem(s, w, r, s.app.Editor.AddEducation)
}

func (s *Server) handleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	updateItem(s, w, r, s.app.Editor.UpdateEducation, educationOf, educationID, editor.ListEducation)
}

func (s *Server) handleRemoveEducation(w http.ResponseWriter, r *http.Request) {
	s.removeItem(w, r, s.app.Editor.RemoveEducation)
}

func (s *Server) handleAddProject(w http.ResponseWriter, r *http.Request) {
	addItem(s, w, r, infallible(s.app.Editor.AddProject))
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	updateItem(s, w, r, s.app.Editor.UpdateProject, projectsOf, projectID, editor.ListProjects)
}

func (s *Server) handleRemoveProject(w http.ResponseWriter, r *http.Request) {
	s.removeItem(w, r, s.app.Editor.RemoveProject)
}

func (s *Server) handleAddCertification(w http.ResponseWriter, r *http.Request) {
	addItem(s, w, r, infallible(s.app.Editor.AddCertification))
}

func (s *Server) handleUpdateCertification(w http.ResponseWriter, r *http.Request) {
	updateItem(s, w, r, s.app.Editor.UpdateCertification, certificationsOf, certificationID, editor.ListCertifications)
}

func (s *Server) handleRemoveCertification(w http.ResponseWriter, r *http.Request) {
	s.removeItem(w, r, s.app.Editor.RemoveCertification)
}

func (s *Server) handleAddAchievement(w http.ResponseWriter, r *http.Request) {
	addItem(s, w, r, infallible(s.app.Editor.AddAchievement))
}

func (s *Server) handleUpdateAchievement(w http.ResponseWriter, r *http.Request) {
	updateItem(s, w, r, s.app.Editor.UpdateAchievement, achievementsOf, achievementID, editor.ListAchievements)
}

func (s *Server) handleRemoveAchievement(w http.ResponseWriter, r *http.Request) {
	s.removeItem(w, r, s.app.Editor.RemoveAchievement)
}

// handleAddBullet appends a description bullet and returns the project
func (s *Server) handleAddBullet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req BulletRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}
	if err := s.app.Editor.AddProjectBullet(id, req.Text); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.projectResponse(w, http.StatusCreated, id)
}

// handleUpdateBullet overwrites one description bullet and returns the project
func (s *Server) handleUpdateBullet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	index, err := bulletIndex(r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	var req BulletRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}
	if err := s.app.Editor.UpdateProjectBullet(id, index, req.Text); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.projectResponse(w, http.StatusOK, id)
}

// handleRemoveBullet deletes one description bullet and returns the project
func (s *Server) handleRemoveBullet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	index, err := bulletIndex(r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	if err := s.app.Editor.RemoveProjectBullet(id, index); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.projectResponse(w, http.StatusOK, id)
}

func (s *Server) projectResponse(w http.ResponseWriter, status int, id string) {
	project, ok := findByID(projectsOf(s.app.Editor.Snapshot()), id, projectID)
	if !ok {
		s.errorFromErr(w, &editor.ItemNotFoundError{List: editor.ListProjects, ID: id})
		return
	}
	s.jsonResponse(w, status, project)
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request, remove func(id string) error) {
	if err := remove(r.PathValue("id")); err != nil {
		s.errorFromErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// addItem decodes a list item, appends it and returns it with its new id
func addItem[T any](s *Server, w http.ResponseWriter, r *http.Request, add func(T) (T, error)) {
	var item T
	if err := s.decodeJSON(w, r, &item); err != nil {
		s.errorFromErr(w, err)
		return
	}
	added, err := add(item)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, added)
}

func infallible[T any](add func(T) T) func(T) (T, error) {
	return func(item T) (T, error) { return add(item), nil }
}

// updateItem decodes a list item, overwrites the one at {id} and returns the stored value
func updateItem[T any](
	s *Server,
	w http.ResponseWriter,
	r *http.Request,
	update func(id string, item T) error,
	list func(*types.ResumeDocument) []T,
	key func(T) string,
	listName string,
) {
	id := r.PathValue("id")
	var item T
	if err := s.decodeJSON(w, r, &item); err != nil {
		s.errorFromErr(w, err)
		return
	}
	if err := update(id, item); err != nil {
		s.errorFromErr(w, err)
		return
	}
	stored, ok := findByID(list(s.app.Editor.Snapshot()), id, key)
	if !ok {
		s.errorFromErr(w, &editor.ItemNotFoundError{List: listName, ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, stored)
}

func findByID[T any](items []T, id string, key func(T) string) (T, bool) {
	for _, item := range items {
		if key(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func educationOf(d *types.ResumeDocument) []types.Education          { return d.Education }
func projectsOf(d *types.ResumeDocument) []types.Project             { return d.Projects }
func certificationsOf(d *types.ResumeDocument) []types.Certification { return d.Certifications }
func achievementsOf(d *types.ResumeDocument) []types.Achievement     { return d.Achievements }

func educationID(v types.Education) string         { return v.ID }
func projectID(v types.Project) string             { return v.ID }
func certificationID(v types.Certification) string { return v.ID }
func achievementID(v types.Achievement) string     { return v.ID }

func bulletIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return 0, &ErrValidation{Field: "index", Message: "must be an integer"}
	}
	return index, nil
}
