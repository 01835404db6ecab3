package endpoints

import (
	"bytes"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tilhq/til-in-go/pkg/audit"
	"github.com/tilhq/til-in-go/pkg/render"
	"github.com/tilhq/til-in-go/pkg/server"
	"github.com/tilhq/til-in-go/pkg/server/middleware"
	"github.com/tilhq/til-in-go/pkg/server/store"
	"github.com/tilhq/til-in-go/pkg/session"
	"github.com/tilhq/til-in-go/web"
)

// View contexts are fully resolved before rendering: every field is a plain
// value, never a pending query.

type IndexContext struct {
	Title        string
	Acronyms     []store.Acronym
	UserLoggedIn bool
}

type AcronymContext struct {
	Title      string
	Acronym    *store.Acronym
	User       *store.User
	Categories []store.Category
}

type UserContext struct {
	Title    string
	User     *store.User
	Acronyms []store.Acronym
}

type AllUsersContext struct {
	Title string
	Users []store.User
}

type AllCategoriesContext struct {
	Title      string
	Categories []store.Category
}

type CategoryContext struct {
	Title    string
	Category *store.Category
	Acronyms []store.Acronym
}

type LoginContext struct {
	Title      string
	LoginError bool
}

type RegisterContext struct {
	Title   string
	Message string
}

type AboutContext struct {
	Title   string
	Content template.HTML
}

// RegisterWebsiteEndpoints registers the server-rendered page routes. All of
// them run behind the session-loading middleware; the acronym mutation
// routes additionally sit behind the authenticated-only redirect guard.
func RegisterWebsiteEndpoints(s *server.Server) {
	sessionLoader := middleware.NewSessionLoader(s.Sessions)

	pages := s.Router.PathPrefix("/").Subrouter()
	pages.Use(sessionLoader.Middleware)

	pages.HandleFunc("/", handleIndex(s)).Methods("GET")
	pages.HandleFunc("/acronyms/{id:[0-9]+}", handleAcronym(s)).Methods("GET")
	pages.HandleFunc("/users", handleAllUsers(s)).Methods("GET")
	pages.HandleFunc("/users/{id:[0-9]+}", handleUser(s)).Methods("GET")
	pages.HandleFunc("/categories", handleAllCategories(s)).Methods("GET")
	pages.HandleFunc("/categories/{id:[0-9]+}", handleCategoryPage(s)).Methods("GET")
	pages.HandleFunc("/login", handleLoginPage(s)).Methods("GET")
	pages.HandleFunc("/login", handleLoginPost(s)).Methods("POST")
	pages.HandleFunc("/logout", handleLogout(s)).Methods("POST")
	pages.HandleFunc("/register", handleRegisterPage(s)).Methods("GET")
	pages.HandleFunc("/register", handleRegisterPost(s)).Methods("POST")
	pages.HandleFunc("/about", handleAbout(s)).Methods("GET")

	protected := pages.PathPrefix("/acronyms").Subrouter()
	protected.Use(middleware.RequireAuthenticated)
	protected.HandleFunc("/create", handleCreateAcronymForm(s)).Methods("GET")
	protected.HandleFunc("/create", handleCreateAcronymPost(s)).Methods("POST")
	protected.HandleFunc("/{id:[0-9]+}/edit", handleEditAcronymForm(s)).Methods("GET")
	protected.HandleFunc("/{id:[0-9]+}/edit", handleEditAcronymPost(s)).Methods("POST")
	protected.HandleFunc("/{id:[0-9]+}/delete", handleDeleteAcronym(s)).Methods("POST")
}

// renderPage renders into a buffer first so a template failure can still
// become a clean 500.
func renderPage(renderer render.Renderer, w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func handleIndex(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acronyms, err := s.Acronyms.ListAcronyms()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		sess, _ := session.FromContext(r.Context())
		renderPage(s.Renderer, w, "index.html", IndexContext{
			Title:        "Homepage",
			Acronyms:     acronyms,
			UserLoggedIn: sess != nil && sess.Authenticated(),
		})
	}
}

func handleAcronym(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acronym, err := s.Acronyms.FetchAcronym(pathID(r))
		if err != nil {
			respondNotFoundOrError(w, r, err)
			return
		}

		user, err := s.Users.FetchUser(acronym.UserID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		categories, err := s.Categories.CategoriesOfAcronym(acronym.ID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		renderPage(s.Renderer, w, "acronym.html", AcronymContext{
			Title:      acronym.Short,
			Acronym:    acronym,
			User:       user,
			Categories: categories,
		})
	}
}

func handleUser(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.Users.FetchUser(pathID(r))
		if err != nil {
			respondNotFoundOrError(w, r, err)
			return
		}

		acronyms, err := s.Acronyms.ListAcronymsByUser(user.ID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		renderPage(s.Renderer, w, "user.html", UserContext{
			Title:    user.Name,
			User:     user,
			Acronyms: acronyms,
		})
	}
}

func handleAllUsers(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := s.Users.ListUsers()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		renderPage(s.Renderer, w, "allUsers.html", AllUsersContext{
			Title: "All Users",
			Users: users,
		})
	}
}

func handleAllCategories(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := s.Categories.ListCategories()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		renderPage(s.Renderer, w, "allCategories.html", AllCategoriesContext{
			Title:      "All Categories",
			Categories: categories,
		})
	}
}

func handleCategoryPage(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := s.Categories.FetchCategory(pathID(r))
		if err != nil {
			respondNotFoundOrError(w, r, err)
			return
		}

		acronyms, err := s.Categories.AcronymsOfCategory(category.ID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		renderPage(s.Renderer, w, "category.html", CategoryContext{
			Title:    category.Name,
			Category: category,
			Acronyms: acronyms,
		})
	}
}

func handleLoginPage(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(s.Renderer, w, "login.html", LoginContext{
			Title:      "Log In",
			LoginError: r.URL.Query().Has("error"),
		})
	}
}

func handleLoginPost(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		username := r.PostFormValue("username")
		password := r.PostFormValue("password")

		user, err := s.Credentials.Authenticate(username, password)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		s.Audit.Log(audit.AuthenticateEvent{
			Username: username,
			ClientIP: clientIP(r),
			Success:  user != nil,
		})
		if user == nil {
			http.Redirect(w, r, "/login?error", http.StatusSeeOther)
			return
		}

		sess, _ := session.FromContext(r.Context())
		if sess == nil {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		sess.Login(user.ID)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func handleLogout(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := session.FromContext(r.Context()); ok {
			sess.Logout()
			s.Sessions.Clear(sess.ID())
		}
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func handleRegisterPage(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(s.Renderer, w, "register.html", RegisterContext{
			Title:   "Register",
			Message: r.URL.Query().Get("message"),
		})
	}
}

func handleRegisterPost(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}

		data := registrationData{
			Name:            r.PostFormValue("name"),
			Username:        r.PostFormValue("username"),
			Password:        r.PostFormValue("password"),
			ConfirmPassword: r.PostFormValue("confirmPassword"),
		}
		if reason := data.validate(); reason != "" {
			http.Redirect(w, r, "/register?message="+url.QueryEscape(reason), http.StatusSeeOther)
			return
		}

		hash, err := hashPassword(data.Password)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		user := &store.User{
			Name:         data.Name,
			Username:     data.Username,
			PasswordHash: hash,
		}
		if err := s.Users.CreateUser(user); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		s.Audit.Log(audit.RegisterEvent{Username: user.Username, UserID: user.ID})

		if sess, ok := session.FromContext(r.Context()); ok {
			sess.Login(user.ID)
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func handleAbout(s *server.Server) http.HandlerFunc {
	content := aboutContent()
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(s.Renderer, w, "about.html", AboutContext{
			Title:   "About",
			Content: content,
		})
	}
}

func aboutContent() template.HTML {
	src, err := web.FS.ReadFile("about.md")
	if err != nil {
		return ""
	}
	content, err := render.Markdown(src)
	if err != nil {
		log.Printf("about page markdown: %v", err)
		return ""
	}
	return content
}

func respondNotFoundOrError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
