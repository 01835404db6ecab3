package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/tilhq/til-in-go/pkg/audit"
	"github.com/tilhq/til-in-go/pkg/auth"
	"github.com/tilhq/til-in-go/pkg/render"
	"github.com/tilhq/til-in-go/pkg/server/store"
	"github.com/tilhq/til-in-go/pkg/session"
)

// Server bundles the router with the collaborators handlers depend on.
type Server struct {
	Router *mux.Router

	Users      store.UsersStore
	Acronyms   store.AcronymsStore
	Categories store.CategoriesStore
	Tokens     store.TokensStore

	Sessions    *session.Store
	Credentials *auth.Credentials
	TokenIssuer *auth.TokenIssuer
	Renderer    render.Renderer
	Audit       *audit.Logger

	srv *http.Server
}

// NewServer creates a server listening on host:port.
func NewServer(
	users store.UsersStore,
	acronyms store.AcronymsStore,
	categories store.CategoriesStore,
	tokens store.TokensStore,
	sessions *session.Store,
	renderer render.Renderer,
	host string,
	port string,
) *Server {
	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:      router,
		Users:       users,
		Acronyms:    acronyms,
		Categories:  categories,
		Tokens:      tokens,
		Sessions:    sessions,
		Credentials: auth.NewCredentials(users),
		TokenIssuer: auth.NewTokenIssuer(tokens),
		Renderer:    renderer,
		Audit:       audit.Default(),
		srv:         srv,
	}
}

// Start begins serving requests.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}
