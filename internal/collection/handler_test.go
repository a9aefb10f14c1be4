package collection

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"slices"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Vitinho0102/LoginDoGameRate/internal/middleware"
	"github.com/Vitinho0102/LoginDoGameRate/internal/models"
	"github.com/Vitinho0102/LoginDoGameRate/internal/store"
)

// memCollections mirrors the Mongo store's filtered-update semantics: the
// membership check and the write happen under one lock.
type memCollections struct {
	mu    sync.Mutex
	lists map[string][]string
}

func newMemCollections() *memCollections {
	return &memCollections{lists: map[string][]string{}}
}

func (m *memCollections) AddToCollection(ctx context.Context, userID, gameID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.lists[userID]
	if slices.Contains(list, gameID) {
		return nil, store.ErrDuplicateEntry
	}
	list = append(list, gameID)
	m.lists[userID] = list
	return slices.Clone(list), nil
}

func (m *memCollections) RemoveFromCollection(ctx context.Context, userID, gameID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.lists[userID]
	i := slices.Index(list, gameID)
	if i < 0 {
		return nil, store.ErrEntryNotFound
	}
	list = slices.Delete(list, i, i+1)
	m.lists[userID] = list
	return slices.Clone(list), nil
}

type fixture struct {
	handler *Handler
	store   *memCollections
	user    *models.User
}

func newFixture() *fixture {
	s := newMemCollections()
	return &fixture{
		handler: NewHandler(s),
		store:   s,
		user:    &models.User{ID: primitive.NewObjectID(), Username: "alice", Collection: []string{}},
	}
}

// do runs one handler with the fixture user already attached, the way the
// auth middleware would.
func (f *fixture) do(t *testing.T, h http.HandlerFunc, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req = req.WithContext(middleware.WithUser(req.Context(), f.user))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func (f *fixture) add(t *testing.T, gameID string) *httptest.ResponseRecorder {
	t.Helper()
	rec := f.do(t, f.handler.Add, http.MethodPost, "/collection/add", gameRequest{GameID: gameID})
	// Keep the fixture user's view in sync the way a reloaded document would be.
	if rec.Code == http.StatusOK {
		f.user.Collection = f.store.lists[f.user.ID.Hex()]
	}
	return rec
}

func (f *fixture) remove(t *testing.T, gameID string) *httptest.ResponseRecorder {
	t.Helper()
	rec := f.do(t, f.handler.Remove, http.MethodPost, "/collection/remove", gameRequest{GameID: gameID})
	if rec.Code == http.StatusOK {
		f.user.Collection = f.store.lists[f.user.ID.Hex()]
	}
	return rec
}

func collectionOf(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var body struct {
		Collection []string `json:"collection"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode collection: %v", err)
	}
	return body.Collection
}

func TestAdd_ThenDuplicate(t *testing.T) {
	t.Parallel()

	f := newFixture()
	rec := f.add(t, "g1")
	if rec.Code != http.StatusOK {
		t.Fatalf("add status = %d", rec.Code)
	}
	if got := collectionOf(t, rec); !reflect.DeepEqual(got, []string{"g1"}) {
		t.Fatalf("collection = %v", got)
	}

	rec = f.add(t, "g1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate add status = %d", rec.Code)
	}
	if len(f.store.lists[f.user.ID.Hex()]) != 1 {
		t.Fatalf("collection grew on duplicate add: %v", f.store.lists[f.user.ID.Hex()])
	}
}

func TestRemove_Missing(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.add(t, "g1")

	rec := f.remove(t, "g2")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("remove missing status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["message"] != "game not found in collection" {
		t.Fatalf("message = %q", body["message"])
	}
	if got := f.store.lists[f.user.ID.Hex()]; !reflect.DeepEqual(got, []string{"g1"}) {
		t.Fatalf("collection changed on failed remove: %v", got)
	}
}

func TestAddListRemoveRoundTrip(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.add(t, "g1")

	rec := f.do(t, f.handler.List, http.MethodGet, "/collection", nil)
	if got := collectionOf(t, rec); !reflect.DeepEqual(got, []string{"g1"}) {
		t.Fatalf("list = %v, want [g1]", got)
	}

	rec = f.remove(t, "g1")
	if got := collectionOf(t, rec); len(got) != 0 {
		t.Fatalf("collection after remove = %v, want empty", got)
	}

	rec = f.do(t, f.handler.List, http.MethodGet, "/collection", nil)
	if got := collectionOf(t, rec); len(got) != 0 {
		t.Fatalf("list after remove = %v, want empty", got)
	}
}

func TestList_PreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	f := newFixture()
	for _, id := range []string{"g3", "g1", "g2"} {
		f.add(t, id)
	}

	rec := f.do(t, f.handler.List, http.MethodGet, "/collection", nil)
	if got := collectionOf(t, rec); !reflect.DeepEqual(got, []string{"g3", "g1", "g2"}) {
		t.Fatalf("list = %v, want insertion order", got)
	}
}

func TestCheck_DoesNotMutate(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.add(t, "g1")

	for i := 0; i < 3; i++ {
		rec := f.do(t, f.handler.Check, http.MethodPost, "/collection/check", gameRequest{GameID: "g1"})
		if rec.Code != http.StatusOK {
			t.Fatalf("check status = %d", rec.Code)
		}
		var body map[string]bool
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !body["isInCollection"] {
			t.Fatal("expected g1 in collection")
		}
	}

	rec := f.do(t, f.handler.Check, http.MethodPost, "/collection/check", gameRequest{GameID: "g9"})
	var body map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["isInCollection"] {
		t.Fatal("g9 reported in collection")
	}
	if got := f.store.lists[f.user.ID.Hex()]; !reflect.DeepEqual(got, []string{"g1"}) {
		t.Fatalf("check mutated collection: %v", got)
	}
}

func TestAdd_MissingGameID(t *testing.T) {
	t.Parallel()

	f := newFixture()
	rec := f.do(t, f.handler.Add, http.MethodPost, "/collection/add", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
