package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tilhq/til-in-go/pkg/audit"
	"github.com/tilhq/til-in-go/pkg/reconcile"
	"github.com/tilhq/til-in-go/pkg/server"
	"github.com/tilhq/til-in-go/pkg/server/store"
	"github.com/tilhq/til-in-go/pkg/session"
)

// CreateAcronymContext backs the createAcronym template for both the create
// and edit forms.
type CreateAcronymContext struct {
	Title         string
	CSRFToken     string
	Editing       bool
	Acronym       *store.Acronym
	CategoryNames string
}

func handleCreateAcronymForm(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		token, err := sess.IssueCSRF()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		renderPage(s.Renderer, w, "createAcronym.html", CreateAcronymContext{
			Title:     "Create An Acronym",
			CSRFToken: token,
		})
	}
}

func handleCreateAcronymPost(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		user, err := sess.RequireAuthenticated(s.Users)
		if err != nil {
			respondWorkflowError(w, r, err)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if err := sess.ConsumeCSRF(r.PostFormValue("csrfToken")); err != nil {
			respondWorkflowError(w, r, err)
			return
		}

		acronym := &store.Acronym{
			Short:  r.PostFormValue("short"),
			Long:   r.PostFormValue("long"),
			UserID: user.ID,
		}
		if err := s.Acronyms.CreateAcronym(acronym); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		desired := parseCategoryNames(r.PostForm["categories"])
		reconciler := reconcile.New(s.Categories)
		if err := reconciler.Apply(acronym.ID, nil, desired); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		s.Audit.Log(audit.AcronymEvent{Action: "create", AcronymID: acronym.ID, Username: user.Username})
		http.Redirect(w, r, fmt.Sprintf("/acronyms/%d", acronym.ID), http.StatusSeeOther)
	}
}

func handleEditAcronymForm(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		user, err := sess.RequireAuthenticated(s.Users)
		if err != nil {
			respondWorkflowError(w, r, err)
			return
		}

		acronym, err := s.Acronyms.FetchAcronym(pathID(r))
		if err != nil {
			respondNotFoundOrError(w, r, err)
			return
		}
		if acronym.UserID != user.ID {
			http.Error(w, "only the owner may edit an acronym", http.StatusForbidden)
			return
		}

		categories, err := s.Categories.CategoriesOfAcronym(acronym.ID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		token, err := sess.IssueCSRF()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		names := make([]string, 0, len(categories))
		for _, category := range categories {
			names = append(names, category.Name)
		}
		renderPage(s.Renderer, w, "createAcronym.html", CreateAcronymContext{
			Title:         "Edit Acronym",
			CSRFToken:     token,
			Editing:       true,
			Acronym:       acronym,
			CategoryNames: strings.Join(names, ", "),
		})
	}
}

func handleEditAcronymPost(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		user, err := sess.RequireAuthenticated(s.Users)
		if err != nil {
			respondWorkflowError(w, r, err)
			return
		}

		acronym, err := s.Acronyms.FetchAcronym(pathID(r))
		if err != nil {
			respondNotFoundOrError(w, r, err)
			return
		}
		if acronym.UserID != user.ID {
			http.Error(w, "only the owner may edit an acronym", http.StatusForbidden)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if err := sess.ConsumeCSRF(r.PostFormValue("csrfToken")); err != nil {
			respondWorkflowError(w, r, err)
			return
		}

		// Existing tag set is read before the field update is saved.
		existing, err := s.Categories.CategoriesOfAcronym(acronym.ID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		acronym.Short = r.PostFormValue("short")
		acronym.Long = r.PostFormValue("long")
		if err := s.Acronyms.UpdateAcronym(acronym); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		desired := parseCategoryNames(r.PostForm["categories"])
		reconciler := reconcile.New(s.Categories)
		if err := reconciler.Apply(acronym.ID, existing, desired); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		s.Audit.Log(audit.AcronymEvent{Action: "update", AcronymID: acronym.ID, Username: user.Username})
		http.Redirect(w, r, fmt.Sprintf("/acronyms/%d", acronym.ID), http.StatusSeeOther)
	}
}

func handleDeleteAcronym(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		user, err := sess.RequireAuthenticated(s.Users)
		if err != nil {
			respondWorkflowError(w, r, err)
			return
		}

		acronym, err := s.Acronyms.FetchAcronym(pathID(r))
		if err != nil {
			respondNotFoundOrError(w, r, err)
			return
		}
		if acronym.UserID != user.ID {
			http.Error(w, "only the owner may delete an acronym", http.StatusForbidden)
			return
		}

		if err := s.Acronyms.DeleteAcronym(acronym.ID); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		s.Audit.Log(audit.AcronymEvent{Action: "delete", AcronymID: acronym.ID, Username: user.Username})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// respondWorkflowError maps the recoverable workflow failures onto their
// responses: missing authentication becomes a login redirect, a CSRF
// mismatch a bad request. Anything else is a storage failure.
func respondWorkflowError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrUnauthorized):
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, session.ErrCSRFMismatch):
		http.Error(w, "invalid csrf token", http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// parseCategoryNames flattens submitted category values: repeated fields
// and comma-separated lists both work, blanks are dropped. Duplicates are
// left in; the reconciler collapses them.
func parseCategoryNames(values []string) []string {
	var names []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if name := strings.TrimSpace(part); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
