package controllers

import (
	"encoding/json"
	"net/http"

	"territorios/backend/app/dto"
	"territorios/backend/app/services"
)

type AdminController struct{ Guard *services.AuthService }

func NewAdminController(guard *services.AuthService) *AdminController {
	return &AdminController{Guard: guard}
}

func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.Guard.ListUsers()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (c *AdminController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Token == "" || req.Username == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	u, err := c.Guard.CreateUser(r.Context(), req.Token, req.Username, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// Users dispatches on method so list and create share one route.
func (c *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		c.ListUsers(w, r)
	case http.MethodPost:
		c.CreateUser(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
