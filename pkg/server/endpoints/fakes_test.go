package endpoints

import (
	"io"
	"net/http"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tilhq/til-in-go/pkg/audit"
	"github.com/tilhq/til-in-go/pkg/auth"
	"github.com/tilhq/til-in-go/pkg/render"
	"github.com/tilhq/til-in-go/pkg/server"
	"github.com/tilhq/til-in-go/pkg/server/middleware"
	"github.com/tilhq/til-in-go/pkg/server/store"
	"github.com/tilhq/til-in-go/pkg/session"
)

// In-memory store implementations backing the handler tests.

type fakeUsersStore struct {
	nextID int64
	users  map[int64]store.User
}

func newFakeUsersStore() *fakeUsersStore {
	return &fakeUsersStore{users: map[int64]store.User{}}
}

func (f *fakeUsersStore) FetchUser(id int64) (*store.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (f *fakeUsersStore) FindUserByUsername(username string) (*store.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsersStore) ListUsers() ([]store.User, error) {
	var users []store.User
	for _, user := range f.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (f *fakeUsersStore) CreateUser(user *store.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = *user
	return nil
}

type fakeAcronymsStore struct {
	nextID   int64
	acronyms map[int64]store.Acronym
}

func newFakeAcronymsStore() *fakeAcronymsStore {
	return &fakeAcronymsStore{acronyms: map[int64]store.Acronym{}}
}

func (f *fakeAcronymsStore) FetchAcronym(id int64) (*store.Acronym, error) {
	acronym, ok := f.acronyms[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &acronym, nil
}

func (f *fakeAcronymsStore) ListAcronyms() ([]store.Acronym, error) {
	var acronyms []store.Acronym
	for _, acronym := range f.acronyms {
		acronyms = append(acronyms, acronym)
	}
	sort.Slice(acronyms, func(i, j int) bool { return acronyms[i].Short < acronyms[j].Short })
	return acronyms, nil
}

func (f *fakeAcronymsStore) ListAcronymsByUser(userID int64) ([]store.Acronym, error) {
	var acronyms []store.Acronym
	for _, acronym := range f.acronyms {
		if acronym.UserID == userID {
			acronyms = append(acronyms, acronym)
		}
	}
	sort.Slice(acronyms, func(i, j int) bool { return acronyms[i].Short < acronyms[j].Short })
	return acronyms, nil
}

func (f *fakeAcronymsStore) CreateAcronym(acronym *store.Acronym) error {
	f.nextID++
	acronym.ID = f.nextID
	f.acronyms[acronym.ID] = *acronym
	return nil
}

func (f *fakeAcronymsStore) UpdateAcronym(acronym *store.Acronym) error {
	if _, ok := f.acronyms[acronym.ID]; !ok {
		return store.ErrNotFound
	}
	f.acronyms[acronym.ID] = *acronym
	return nil
}

func (f *fakeAcronymsStore) DeleteAcronym(id int64) error {
	if _, ok := f.acronyms[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.acronyms, id)
	return nil
}

type fakeCategoriesStore struct {
	nextID       int64
	categories   map[int64]store.Category
	associations map[[2]int64]bool
	acronyms     *fakeAcronymsStore
}

func newFakeCategoriesStore(acronyms *fakeAcronymsStore) *fakeCategoriesStore {
	return &fakeCategoriesStore{
		categories:   map[int64]store.Category{},
		associations: map[[2]int64]bool{},
		acronyms:     acronyms,
	}
}

func (f *fakeCategoriesStore) FetchCategory(id int64) (*store.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &category, nil
}

func (f *fakeCategoriesStore) FindCategoryByName(name string) (*store.Category, error) {
	for _, category := range f.categories {
		if category.Name == name {
			c := category
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeCategoriesStore) ListCategories() ([]store.Category, error) {
	var categories []store.Category
	for _, category := range f.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (f *fakeCategoriesStore) CreateCategory(category *store.Category) error {
	f.nextID++
	category.ID = f.nextID
	f.categories[category.ID] = *category
	return nil
}

func (f *fakeCategoriesStore) CategoriesOfAcronym(acronymID int64) ([]store.Category, error) {
	var categories []store.Category
	for pair := range f.associations {
		if pair[0] == acronymID {
			categories = append(categories, f.categories[pair[1]])
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (f *fakeCategoriesStore) AcronymsOfCategory(categoryID int64) ([]store.Acronym, error) {
	var acronyms []store.Acronym
	for pair := range f.associations {
		if pair[1] == categoryID {
			if acronym, ok := f.acronyms.acronyms[pair[0]]; ok {
				acronyms = append(acronyms, acronym)
			}
		}
	}
	sort.Slice(acronyms, func(i, j int) bool { return acronyms[i].Short < acronyms[j].Short })
	return acronyms, nil
}

func (f *fakeCategoriesStore) Attach(acronymID, categoryID int64) error {
	f.associations[[2]int64{acronymID, categoryID}] = true
	return nil
}

func (f *fakeCategoriesStore) Detach(acronymID, categoryID int64) error {
	delete(f.associations, [2]int64{acronymID, categoryID})
	return nil
}

type fakeTokensStore struct {
	tokens map[string]int64
	users  *fakeUsersStore
}

func newFakeTokensStore(users *fakeUsersStore) *fakeTokensStore {
	return &fakeTokensStore{tokens: map[string]int64{}, users: users}
}

func (f *fakeTokensStore) CreateToken(value string, userID int64) error {
	f.tokens[value] = userID
	return nil
}

func (f *fakeTokensStore) FindUserByToken(value string) (*store.User, error) {
	userID, ok := f.tokens[value]
	if !ok {
		return nil, store.ErrNotFound
	}
	return f.users.FetchUser(userID)
}

// testServer bundles a fully routed server over in-memory stores.
type testServer struct {
	*server.Server

	users      *fakeUsersStore
	acronyms   *fakeAcronymsStore
	categories *fakeCategoriesStore
	tokens     *fakeTokensStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users := newFakeUsersStore()
	acronyms := newFakeAcronymsStore()
	categories := newFakeCategoriesStore(acronyms)
	tokens := newFakeTokensStore(users)

	renderer, err := render.NewHTML()
	require.NoError(t, err)

	s := server.NewServer(users, acronyms, categories, tokens, session.NewStore(), renderer, "127.0.0.1", "0")
	s.Audit = audit.NewLogger(io.Discard)
	RegisterAll(s)

	return &testServer{
		Server:     s,
		users:      users,
		acronyms:   acronyms,
		categories: categories,
		tokens:     tokens,
	}
}

// seedUser registers a user with a bcrypt hash of the given password.
func (ts *testServer) seedUser(t *testing.T, name, username, password string) *store.User {
	t.Helper()

	hash, err := auth.Hash(password)
	require.NoError(t, err)

	user := &store.User{Name: name, Username: username, PasswordHash: hash}
	require.NoError(t, ts.users.CreateUser(user))
	return user
}

// loginSession creates an authenticated session and returns its cookie.
func (ts *testServer) loginSession(userID int64) (*session.Session, *http.Cookie) {
	sess := ts.Sessions.Create()
	sess.Login(userID)
	return sess, &http.Cookie{Name: middleware.SessionCookieName, Value: sess.ID()}
}

// categoryNamesOf reads an acronym's association set back as sorted names.
func (ts *testServer) categoryNamesOf(t *testing.T, acronymID int64) []string {
	t.Helper()

	categories, err := ts.categories.CategoriesOfAcronym(acronymID)
	require.NoError(t, err)

	var names []string
	for _, category := range categories {
		names = append(names, category.Name)
	}
	return names
}
