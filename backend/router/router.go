package router

import (
	"net/http"

	"territorios/backend/app/controllers"
	"territorios/backend/app/middleware"
)

func NewRouter(httpCtrl *controllers.HTTPController, authCtrl *controllers.AuthController, terrCtrl *controllers.TerritoryController, adminCtrl *controllers.AdminController, mw *middleware.Auth) http.Handler {
	mux := http.NewServeMux()

	// public
	mux.HandleFunc("/ping", httpCtrl.Ping)
	mux.HandleFunc("/login", authCtrl.Login)

	// authenticated
	mux.Handle("/me", mw.RequireAuth(http.HandlerFunc(authCtrl.Me)))
	mux.Handle("/users/update-self", mw.RequireAuth(http.HandlerFunc(authCtrl.UpdateSelf)))
	mux.Handle("/territories/search", mw.RequireAuth(http.HandlerFunc(terrCtrl.Search)))
	mux.Handle("/territories/get", mw.RequireAuth(http.HandlerFunc(terrCtrl.Get)))
	mux.Handle("/territories/stats", mw.RequireAuth(http.HandlerFunc(terrCtrl.Stats)))
	mux.Handle("/territories/by-region", mw.RequireAuth(http.HandlerFunc(terrCtrl.ByRegion)))
	mux.Handle("/territories/update", mw.RequireAuth(http.HandlerFunc(terrCtrl.Update)))
	mux.Handle("/regions", mw.RequireAuth(http.HandlerFunc(terrCtrl.Regions)))

	// /territories: listing is open to any authenticated user, create and
	// delete are admin actions.
	mux.Handle("/territories", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			mw.RequireAuth(http.HandlerFunc(terrCtrl.List)).ServeHTTP(w, r)
		case http.MethodPost:
			mw.RequireAdmin(http.HandlerFunc(terrCtrl.Create)).ServeHTTP(w, r)
		case http.MethodDelete:
			mw.RequireAdmin(http.HandlerFunc(terrCtrl.Delete)).ServeHTTP(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// admin-only endpoints
	mux.Handle("/admin/users", mw.RequireAdmin(http.HandlerFunc(adminCtrl.Users)))
	mux.Handle("/admin/territories", mw.RequireAdmin(http.HandlerFunc(terrCtrl.ListWithEditInfo)))
	mux.Handle("/admin/territories/clear-editors", mw.RequireAdmin(http.HandlerFunc(terrCtrl.ClearEditors)))
	mux.Handle("/admin/territories/clear-editor", mw.RequireAdmin(http.HandlerFunc(terrCtrl.ClearOneEditor)))
	mux.Handle("/admin/territories/clear-all-editors", mw.RequireAdmin(http.HandlerFunc(terrCtrl.ClearAllEditors)))

	return mux
}
