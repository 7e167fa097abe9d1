package controllers

import (
	"encoding/json"
	"net/http"

	"territorios/backend/app/dto"
	"territorios/backend/app/middleware"
	"territorios/backend/app/services"
)

type AuthController struct{ Guard *services.AuthService }

func NewAuthController(guard *services.AuthService) *AuthController {
	return &AuthController{Guard: guard}
}

// Login validates a raw token. On an empty store the first caller becomes
// the admin.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Token == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "token obrigatório"})
		return
	}
	u, first, err := c.Guard.Login(r.Context(), req.Token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.LoginResponse{
		User:        dto.UserInfo{Username: u.Username, Role: u.Role, IsAdmin: u.IsAdmin()},
		IsFirstUser: first,
	})
}

// Me reports the token info of the authenticated caller.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	u := middleware.GetUser(r.Context())
	if u == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, dto.UserInfo{Username: u.Username, Role: u.Role, IsAdmin: u.IsAdmin()})
}

func (c *AuthController) UpdateSelf(w http.ResponseWriter, r *http.Request) {
	u := middleware.GetUser(r.Context())
	if u == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var req dto.UpdateSelfRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	updated, err := c.Guard.UpdateSelf(r.Context(), u, req.Username, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.UserInfo{Username: updated.Username, Role: updated.Role, IsAdmin: updated.IsAdmin()})
}
