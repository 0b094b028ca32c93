package router

import (
	"net/http"

	"carmarket/app/controllers"
	"carmarket/app/middleware"
)

func NewRouter(authCtrl *controllers.AuthController, carCtrl *controllers.CarController, favCtrl *controllers.FavoriteController, uploadCtrl *controllers.UploadController, adminCtrl *controllers.AdminController, mw *middleware.Auth) http.Handler {
	mux := http.NewServeMux()

	// public
	mux.HandleFunc("POST /register", authCtrl.Register)
	mux.HandleFunc("POST /login", authCtrl.Login)
	mux.HandleFunc("GET /api/cars", carCtrl.List)
	mux.HandleFunc("GET /api/cars/{id}", carCtrl.Get)
	mux.HandleFunc("GET /files/{key}", uploadCtrl.Serve)

	// mutations require a verified bearer token
	mux.Handle("POST /api/cars", mw.RequireAuth(http.HandlerFunc(carCtrl.Create)))
	mux.Handle("PUT /api/cars/{id}", mw.RequireAuth(http.HandlerFunc(carCtrl.Update)))
	mux.Handle("DELETE /api/cars/{id}", mw.RequireAuth(http.HandlerFunc(carCtrl.Delete)))
	mux.Handle("POST /api/cars/{id}/visibility", mw.RequireAuth(http.HandlerFunc(carCtrl.ToggleVisibility)))
	mux.Handle("GET /api/my/cars", mw.RequireAuth(http.HandlerFunc(carCtrl.Mine)))

	// favorites
	mux.Handle("GET /api/favorites", mw.RequireAuth(http.HandlerFunc(favCtrl.List)))
	mux.Handle("POST /api/favorites", mw.RequireAuth(http.HandlerFunc(favCtrl.Add)))
	mux.Handle("DELETE /api/favorites", mw.RequireAuth(http.HandlerFunc(favCtrl.Remove)))
	mux.Handle("POST /api/favorites/toggle", mw.RequireAuth(http.HandlerFunc(favCtrl.Toggle)))

	// uploads: presign needs a user, the PUT itself is signature-authorized
	mux.Handle("POST /api/upload", mw.RequireAuth(http.HandlerFunc(uploadCtrl.Presign)))
	mux.HandleFunc("PUT /api/upload/{key}", uploadCtrl.Put)

	// admin panel
	mux.Handle("GET /api/admin/users", mw.RequireAdmin(http.HandlerFunc(adminCtrl.ListUsers)))
	mux.Handle("DELETE /api/admin/users/{id}", mw.RequireAdmin(http.HandlerFunc(adminCtrl.DeleteUser)))
	mux.Handle("GET /api/admin/cars", mw.RequireAdmin(http.HandlerFunc(adminCtrl.ListCars)))
	mux.Handle("DELETE /api/admin/cars/{id}", mw.RequireAdmin(http.HandlerFunc(adminCtrl.DeleteCar)))

	return mux
}
