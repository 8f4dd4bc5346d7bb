package httpapi

import (
	"net/http"

	"github.com/alexanderramin/punchclock/internal/contract"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listEmployees(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Users.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payload{"employees": contract.Map(users, contract.UserOf)})
}

func (s *Server) createEmployee(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	u, err := s.svc.Users.Create(r.Context(), service.CreateUserInput{
		Email:          req.Email,
		Name:           req.Name,
		Password:       req.Password,
		Role:           domain.Role(req.Role),
		Status:         domain.UserStatus(req.Status),
		DefaultProject: req.DefaultProject,
		DefaultTask:    req.DefaultTask,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, payload{"employee": contract.UserOf(u)})
}

func (s *Server) updateEmployee(w http.ResponseWriter, r *http.Request) {
	var req contract.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	in := service.UpdateUserInput{
		Email:          req.Email,
		Name:           req.Name,
		Password:       req.Password,
		DefaultProject: req.DefaultProject,
		DefaultTask:    req.DefaultTask,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}
	if req.Status != nil {
		status := domain.UserStatus(*req.Status)
		in.Status = &status
	}
	u, err := s.svc.Users.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payload{"employee": contract.UserOf(u)})
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.svc.Projects.ListProjects(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payload{"projects": contract.Map(projects, contract.ProjectOf)})
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req contract.ProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.svc.Projects.CreateProject(r.Context(), identity(r).UserID, service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, payload{"project": contract.ProjectOf(p)})
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	var req contract.ProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.svc.Projects.UpdateProject(r.Context(), chi.URLParam(r, "id"), service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payload{"project": contract.ProjectOf(p)})
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.Projects.ListTasks(r.Context(), r.URL.Query().Get("project_id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payload{"tasks": contract.Map(tasks, contract.TaskOf)})
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req contract.TaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	t, err := s.svc.Projects.CreateTask(r.Context(), service.TaskInput(req))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, payload{"task": contract.TaskOf(t)})
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var req contract.TaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	t, err := s.svc.Projects.UpdateTask(r.Context(), chi.URLParam(r, "id"), service.TaskInput(req))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payload{"task": contract.TaskOf(t)})
}
