package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"carmarket/app/controllers"
	"carmarket/app/middleware"
	"carmarket/app/models"
	"carmarket/app/repo"
	"carmarket/app/services"
	"carmarket/app/storage"
	"carmarket/app/testutil"
	"carmarket/router"
)

type env struct {
	srv      *httptest.Server
	users    *repo.UserRepository
	cars     *repo.CarRepository
	favs     *repo.FavoriteRepository
	storeDir string
}

func newEnv(t *testing.T, name string) *env {
	t.Helper()
	gdb := testutil.OpenTestDB(t, name)
	storeDir := t.TempDir()
	store, err := storage.NewDiskStore(storeDir)
	if err != nil {
		t.Fatalf("disk store: %v", err)
	}
	presigner := &storage.Presigner{Secret: []byte("presign-secret"), TTL: 10 * time.Minute}

	userRepo := repo.NewUserRepository(gdb)
	carRepo := repo.NewCarRepository(gdb)
	favRepo := repo.NewFavoriteRepository(gdb)
	userSvc := services.NewUserService(userRepo)
	carSvc := services.NewCarService(carRepo, favRepo, store, nil)
	favSvc := services.NewFavoriteService(favRepo, carRepo)

	signer := testutil.Signer()
	mw := &middleware.Auth{Signer: signer}
	authCtrl := controllers.NewAuthController(userSvc, signer)
	carCtrl := controllers.NewCarController(carSvc)
	favCtrl := controllers.NewFavoriteController(favSvc)
	adminCtrl := controllers.NewAdminController(userSvc, carSvc, favSvc)

	srv := httptest.NewServer(nil)
	uploadSvc := services.NewUploadService(presigner, srv.URL)
	uploadCtrl := controllers.NewUploadController(uploadSvc, store)
	srv.Config.Handler = router.NewRouter(authCtrl, carCtrl, favCtrl, uploadCtrl, adminCtrl, mw)
	t.Cleanup(srv.Close)

	return &env{srv: srv, users: userRepo, cars: carRepo, favs: favRepo, storeDir: storeDir}
}

func (e *env) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func (e *env) seedCar(t *testing.T, id string, ownerID uint, images ...string) {
	t.Helper()
	car := &models.Car{ID: id, Brand: "Toyota", Model: "Camry", Year: 2022, Price: 25000, Visible: true, UserID: ownerID, Images: images}
	if err := e.cars.Create(car); err != nil {
		t.Fatalf("seed car: %v", err)
	}
}

func TestListAndGetCars(t *testing.T) {
	e := newEnv(t, "ctrl-list")
	e.seedCar(t, "camry", 1)

	resp := e.do(t, http.MethodGet, "/api/cars?limit=10", "", nil)
	cars := decode[[]models.Car](t, resp)
	if resp.StatusCode != http.StatusOK || len(cars) != 1 {
		t.Fatalf("list: status=%d cars=%d", resp.StatusCode, len(cars))
	}

	resp = e.do(t, http.MethodGet, "/api/cars/camry", "", nil)
	car := decode[models.Car](t, resp)
	if car.ID != "camry" {
		t.Fatalf("get: %+v", car)
	}

	resp = e.do(t, http.MethodGet, "/api/cars/none", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestMutationAuthz(t *testing.T) {
	e := newEnv(t, "ctrl-authz")
	e.seedCar(t, "camry", 1)
	update := map[string]any{"brand": "Honda", "model": "Civic", "year": 2019, "price": 15000}

	// no token
	resp := e.do(t, http.MethodPut, "/api/cars/camry", "", update)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// wrong owner, not admin
	resp = e.do(t, http.MethodPut, "/api/cars/camry", testutil.Token(t, 2, "bob", "regular"), update)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	resp.Body.Close()
	stored, _ := e.cars.Get("camry")
	if stored.Brand != "Toyota" {
		t.Fatalf("document mutated by forbidden request: %+v", stored)
	}

	// owner
	resp = e.do(t, http.MethodPut, "/api/cars/camry", testutil.Token(t, 1, "alice", "regular"), update)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner update: %d", resp.StatusCode)
	}
	resp.Body.Close()
	stored, _ = e.cars.Get("camry")
	if stored.Brand != "Honda" || stored.UserID != 1 {
		t.Fatalf("update not applied: %+v", stored)
	}
}

func TestDeleteCascadesToStorage(t *testing.T) {
	e := newEnv(t, "ctrl-delete")

	// two stored objects referenced by the listing
	for _, key := range []string{"img-a.jpg", "img-b.jpg"} {
		if err := os.WriteFile(filepath.Join(e.storeDir, key), []byte("img"), 0o644); err != nil {
			t.Fatalf("write object: %v", err)
		}
	}
	e.seedCar(t, "camry", 1, e.srv.URL+"/files/img-a.jpg", e.srv.URL+"/files/img-b.jpg")

	resp := e.do(t, http.MethodDelete, "/api/cars/camry", testutil.Token(t, 1, "alice", "regular"), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: %d", resp.StatusCode)
	}
	resp.Body.Close()

	for _, key := range []string{"img-a.jpg", "img-b.jpg"} {
		if _, err := os.Stat(filepath.Join(e.storeDir, key)); !os.IsNotExist(err) {
			t.Fatalf("expected object %s deleted, err=%v", key, err)
		}
	}
	gone, _ := e.cars.Get("camry")
	if gone != nil {
		t.Fatalf("expected listing deleted: %+v", gone)
	}
}

func TestFavoriteToggleRoundTrip(t *testing.T) {
	e := newEnv(t, "ctrl-fav")
	e.seedCar(t, "camry", 1)
	token := testutil.Token(t, 2, "bob", "regular")
	body := map[string]string{"car_id": "camry"}

	resp := e.do(t, http.MethodPost, "/api/favorites/toggle", token, body)
	first := decode[map[string]any](t, resp)
	if first["favorited"] != true {
		t.Fatalf("first toggle: %v", first)
	}
	resp = e.do(t, http.MethodPost, "/api/favorites/toggle", token, body)
	second := decode[map[string]any](t, resp)
	if second["favorited"] != false {
		t.Fatalf("second toggle must restore state: %v", second)
	}

	resp = e.do(t, http.MethodGet, "/api/favorites", token, nil)
	favs := decode[[]models.Car](t, resp)
	if len(favs) != 0 {
		t.Fatalf("expected no favorites after double toggle: %+v", favs)
	}
}

func TestPresignedUploadFlow(t *testing.T) {
	e := newEnv(t, "ctrl-upload")
	token := testutil.Token(t, 1, "alice", "regular")

	resp := e.do(t, http.MethodPost, "/api/upload", token, map[string]string{"filename": "photo.jpg"})
	grant := decode[services.PresignedUpload](t, resp)
	if !strings.HasSuffix(grant.Key, ".jpg") || grant.UploadURL == "" {
		t.Fatalf("presign: %+v", grant)
	}

	// the signed PUT needs no bearer token
	req, err := http.NewRequest(http.MethodPut, grant.UploadURL, strings.NewReader("jpeg bytes"))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	putResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	putResp.Body.Close()
	if putResp.StatusCode != http.StatusCreated {
		t.Fatalf("upload status: %d", putResp.StatusCode)
	}

	getResp, err := http.Get(grant.PublicURL)
	if err != nil {
		t.Fatalf("fetch object: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("fetch status: %d", getResp.StatusCode)
	}

	// tampering with the signature must be rejected
	bad := strings.Replace(grant.UploadURL, "sig=", "sig=ff", 1)
	req, _ = http.NewRequest(http.MethodPut, bad, strings.NewReader("x"))
	badResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("tampered upload: %v", err)
	}
	badResp.Body.Close()
	if badResp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for tampered signature, got %d", badResp.StatusCode)
	}
}

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	e := newEnv(t, "ctrl-admin")
	e.seedCar(t, "camry", 1)

	resp := e.do(t, http.MethodGet, "/api/admin/cars", testutil.Token(t, 2, "bob", "regular"), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for regular user, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	admin := testutil.Token(t, 9, "root", "admin")
	resp = e.do(t, http.MethodGet, "/api/admin/cars", admin, nil)
	cars := decode[[]models.Car](t, resp)
	if len(cars) != 1 {
		t.Fatalf("admin list: %+v", cars)
	}

	resp = e.do(t, http.MethodDelete, "/api/admin/cars/camry", admin, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("admin delete: %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAdminDeleteUserCascades(t *testing.T) {
	e := newEnv(t, "ctrl-deluser")

	victim := &models.User{Username: "bob", PasswordHash: "x", Role: "regular"}
	if err := e.users.Create(victim); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	// bob owns a listing with a stored image and bookmarks someone else's
	if err := os.WriteFile(filepath.Join(e.storeDir, "bob.jpg"), []byte("img"), 0o644); err != nil {
		t.Fatalf("write object: %v", err)
	}
	e.seedCar(t, "bobcar", victim.ID, e.srv.URL+"/files/bob.jpg")
	e.seedCar(t, "camry", 1)
	if err := e.favs.Add(victim.ID, "camry"); err != nil {
		t.Fatalf("favorite: %v", err)
	}

	admin := testutil.Token(t, 9, "root", "admin")
	resp := e.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", victim.ID), admin, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete user: %d", resp.StatusCode)
	}
	resp.Body.Close()

	gone, _ := e.cars.Get("bobcar")
	if gone != nil {
		t.Fatalf("expected owned listing removed: %+v", gone)
	}
	if _, err := os.Stat(filepath.Join(e.storeDir, "bob.jpg")); !os.IsNotExist(err) {
		t.Fatalf("expected stored image removed, err=%v", err)
	}
	if ok, _ := e.favs.Exists(victim.ID, "camry"); ok {
		t.Fatal("expected the user's bookmarks removed")
	}
	kept, _ := e.cars.Get("camry")
	if kept == nil {
		t.Fatal("other owner's listing must survive")
	}
	u, _ := e.users.FindByID(victim.ID)
	if u != nil {
		t.Fatalf("expected account removed: %+v", u)
	}
}

func TestRegisterAndLoginFlow(t *testing.T) {
	e := newEnv(t, "ctrl-auth")

	resp := e.do(t, http.MethodPost, "/register", "", map[string]string{"username": "alice", "email": "a@example.com", "password": "pw"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: %d", resp.StatusCode)
	}
	reg := decode[map[string]string](t, resp)
	if reg["access_token"] == "" {
		t.Fatal("expected token on register")
	}

	resp = e.do(t, http.MethodPost, "/login", "", map[string]string{"username": "alice", "password": "pw"})
	login := decode[map[string]string](t, resp)
	if resp.StatusCode != http.StatusOK || login["access_token"] == "" {
		t.Fatalf("login: %d %v", resp.StatusCode, login)
	}

	resp = e.do(t, http.MethodPost, "/login", "", map[string]string{"username": "alice", "password": "wrong"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}
