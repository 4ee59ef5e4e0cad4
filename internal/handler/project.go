package handler

import (
	"log/slog"
	"net/http"

	"projecthub/internal/domain/services"
	"projecthub/internal/httputil"
)

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	projectService services.ProjectService
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService services.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// ListProjects retrieves all active projects
// GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	projects, err := h.projectService.ListActive(r.Context(), p)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondList(w, http.StatusOK, projects, len(projects))
}

// ListMyProjects retrieves the caller's projects
// GET /api/projects/my
func (h *ProjectHandler) ListMyProjects(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	projects, err := h.projectService.ListMine(r.Context(), p)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondList(w, http.StatusOK, projects, len(projects))
}

// CreateProject creates a new project
// POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req services.CreateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.projectService.Create(r.Context(), p, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondDataMessage(w, http.StatusCreated, "Project created successfully", project)
}

// GetProject retrieves a project by ID
// GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	project, err := h.projectService.Get(r.Context(), p, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, project)
}

// UpdateProject updates project metadata and status
// PUT /api/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.projectService.Update(r.Context(), p, id, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondDataMessage(w, http.StatusOK, "Project updated successfully", project)
}

// AssignMember adds a user to the project team
// POST /api/projects/{id}/members
func (h *ProjectHandler) AssignMember(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		UserID string `json:"user_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	project, err := h.projectService.AssignMember(r.Context(), p, id, req.UserID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondDataMessage(w, http.StatusOK, "Member assigned successfully", project)
}

// RemoveMember removes a user from the project team
// DELETE /api/projects/{id}/members/{userId}
func (h *ProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	project, err := h.projectService.RemoveMember(r.Context(), p, id, userID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondDataMessage(w, http.StatusOK, "Member removed successfully", project)
}
