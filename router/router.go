package router

import (
	"net/http"

	"taskboard/app/controllers"
	"taskboard/app/middleware"
)

func NewRouter(authCtrl *controllers.AuthController, taskCtrl *controllers.TaskController, mw *middleware.Auth) http.Handler {
	mux := http.NewServeMux()

	// auth: signup is reachable anonymously but honors an admin token
	// (role escalation); register-admin is the same handler behind the
	// role gate, so a missing or non-admin token never reaches it.
	mux.Handle("POST /auth/register", mw.OptionalAuth(http.HandlerFunc(authCtrl.Register)))
	mux.Handle("POST /auth/register-admin", mw.RequireAdmin(http.HandlerFunc(authCtrl.Register)))
	mux.HandleFunc("POST /auth/login", authCtrl.Login)

	// tasks, all behind authentication
	mux.Handle("GET /tasks", mw.RequireAuth(http.HandlerFunc(taskCtrl.List)))
	mux.Handle("GET /tasks/admin/all", mw.RequireAdmin(http.HandlerFunc(taskCtrl.List)))
	mux.Handle("POST /tasks", mw.RequireAuth(http.HandlerFunc(taskCtrl.Create)))
	mux.Handle("PUT /tasks/{id}", mw.RequireAuth(http.HandlerFunc(taskCtrl.Update)))
	mux.Handle("DELETE /tasks/{id}", mw.RequireAuth(http.HandlerFunc(taskCtrl.Delete)))

	return mux
}
