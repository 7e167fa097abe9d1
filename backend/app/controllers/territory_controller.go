package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"territorios/backend/app/dto"
	"territorios/backend/app/middleware"
	"territorios/backend/app/services"
)

type TerritoryController struct{ Territories *services.TerritoryService }

func NewTerritoryController(territories *services.TerritoryService) *TerritoryController {
	return &TerritoryController{Territories: territories}
}

func queryID(r *http.Request) (uint, bool) {
	raw := r.URL.Query().Get("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// List serves the cursor-paginated listing. done_recently is tri-state:
// "true", "false", or absent for no filter.
func (c *TerritoryController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageSize, _ := strconv.Atoi(q.Get("page_size"))
	var filter *bool
	if raw := q.Get("done_recently"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		filter = &v
	}
	page, next, err := c.Territories.List(q.Get("cursor"), pageSize, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.TerritoryPage{Page: page, NextCursor: next})
}

func (c *TerritoryController) Search(w http.ResponseWriter, r *http.Request) {
	ts, err := c.Territories.Search(r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (c *TerritoryController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	t, err := c.Territories.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (c *TerritoryController) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := c.Territories.Stats()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (c *TerritoryController) Regions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.Territories.Regions())
}

func (c *TerritoryController) ByRegion(w http.ResponseWriter, r *http.Request) {
	ts, err := c.Territories.ListByRegion(r.URL.Query().Get("region"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (c *TerritoryController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTerritoryRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	t, err := c.Territories.Create(req.Name, req.Description, req.Region)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// Update is the toggle operation; the acting user comes from the auth
// middleware and lands at the front of the recent-editors list.
func (c *TerritoryController) Update(w http.ResponseWriter, r *http.Request) {
	u := middleware.GetUser(r.Context())
	if u == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var req dto.UpdateTerritoryRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.ID == 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	t, err := c.Territories.Update(req.ID, req.Description, req.Region, req.TimesWhereItWasDone, u.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (c *TerritoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := c.Territories.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *TerritoryController) ListWithEditInfo(w http.ResponseWriter, r *http.Request) {
	ts, err := c.Territories.ListWithEditInfo()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (c *TerritoryController) ClearEditors(w http.ResponseWriter, r *http.Request) {
	var req dto.ClearEditorsRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.ID == 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := c.Territories.ClearEditors(req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *TerritoryController) ClearOneEditor(w http.ResponseWriter, r *http.Request) {
	var req dto.ClearEditorsRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.ID == 0 || req.Username == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := c.Territories.ClearOneEditor(req.ID, req.Username); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *TerritoryController) ClearAllEditors(w http.ResponseWriter, r *http.Request) {
	cleared, err := c.Territories.ClearAllEditors()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ClearedResponse{Cleared: cleared})
}
