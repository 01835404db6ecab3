package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tilhq/til-in-go/pkg/audit"
	"github.com/tilhq/til-in-go/pkg/auth"
	"github.com/tilhq/til-in-go/pkg/server"
	"github.com/tilhq/til-in-go/pkg/server/middleware"
	"github.com/tilhq/til-in-go/pkg/server/store"
)

// RegisterCategoriesAPI registers the JSON category API and the token login
// endpoint.
func RegisterCategoriesAPI(s *server.Server) {
	router := s.Router

	router.HandleFunc("/api/login", handleAPILogin(s.Credentials, s.TokenIssuer, s.Audit)).Methods("POST")

	categoriesRouter := router.PathPrefix("/api/categories").Subrouter()
	categoriesRouter.HandleFunc("", handleListCategories(s.Categories)).Methods("GET")
	categoriesRouter.HandleFunc("/{id:[0-9]+}", handleGetCategory(s.Categories)).Methods("GET")
	categoriesRouter.HandleFunc("/{id:[0-9]+}/acronyms", handleCategoryAcronyms(s.Categories)).Methods("GET")

	tokenAuth := middleware.NewTokenAuthenticator(s.Tokens)
	createRouter := router.PathPrefix("/api/categories").Subrouter()
	createRouter.Use(tokenAuth.Middleware)
	createRouter.HandleFunc("", handleCreateCategory(s.Categories)).Methods("POST")
}

func handleListCategories(categories store.CategoriesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := categories.ListCategories()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleGetCategory(categories store.CategoriesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

		category, err := categories.FetchCategory(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "category not found")
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, http.StatusOK, category)
	}
}

func handleCategoryAcronyms(categories store.CategoriesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

		if _, err := categories.FetchCategory(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "category not found")
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		acronyms, err := categories.AcronymsOfCategory(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, http.StatusOK, acronyms)
	}
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

func handleCreateCategory(categories store.CategoriesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.Name == "" {
			respondWithError(w, http.StatusBadRequest, "name is required")
			return
		}

		category := &store.Category{Name: body.Name}
		if err := categories.CreateCategory(category); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, http.StatusCreated, category)
	}
}

type apiLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func handleAPILogin(credentials *auth.Credentials, issuer *auth.TokenIssuer, auditLog *audit.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body apiLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := credentials.Authenticate(body.Username, body.Password)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		auditLog.Log(audit.AuthenticateEvent{
			Username: body.Username,
			ClientIP: clientIP(r),
			Success:  user != nil,
		})
		if user == nil {
			respondWithError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := issuer.Issue(user.ID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}
