package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsarehard/internal/challenge"
	"github.com/robalobadob/wordsarehard/internal/config"
	"github.com/robalobadob/wordsarehard/internal/db"
	"github.com/robalobadob/wordsarehard/internal/httpserver"
	"github.com/robalobadob/wordsarehard/internal/store"
	"github.com/robalobadob/wordsarehard/internal/words"
)

const cookieName = "test_token"

func newServer(t *testing.T) http.Handler {
	t.Helper()
	conn, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	builtin, err := challenge.Builtin("")
	require.NoError(t, err)

	cfg := config.Config{
		ClientOrigin:     "http://localhost:5173",
		JWTSecret:        "test-secret",
		JWTExpiresDays:   1,
		CookieName:       cookieName,
		DailySalt:        "salt",
		Rounds:           8,
		GenerateAttempts: 5,
	}
	catalog := challenge.NewCatalog(builtin, challenge.NewStore(conn))
	return httpserver.New(cfg, store.NewMemoryStore(), conn, words.Default(), catalog).Router()
}

func do(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type ruleView struct {
	Kind        string `json:"kind"`
	Target      string `json:"target"`
	Destination string `json:"destination"`
	Count       int    `json:"count"`
	Text        string `json:"text"`
}

type gameView struct {
	GameID   string     `json:"gameId"`
	Index    int        `json:"index"`
	Total    int        `json:"total"`
	Complete bool       `json:"complete"`
	Rules    []ruleView `json:"rules"`
	HardWord string     `json:"hardWord"`
	Seed     *int64     `json:"seed"`
	Date     string     `json:"date"`
}

type guessRes struct {
	Correct bool     `json:"correct"`
	Game    gameView `json:"game"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h := newServer(t)
	rec := do(t, h, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, h, http.MethodGet, "/debug/words", nil, "")
	counts := decode[map[string]int](t, rec)
	assert.Equal(t, words.Default().Len(), counts["words"])

	rec = do(t, h, http.MethodGet, "/debug/words?word=Arbitrary", nil, "")
	lookup := decode[map[string]any](t, rec)
	assert.Equal(t, true, lookup["known"])
	rec = do(t, h, http.MethodGet, "/debug/words?word=zzzz", nil, "")
	assert.Equal(t, false, decode[map[string]any](t, rec)["known"])

	rec = do(t, h, http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTutorialPlayThrough(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodPost, "/game/new", map[string]string{"mode": "challenge", "challenge": "tutorial"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	g := decode[gameView](t, rec)
	assert.Equal(t, 0, g.Index)
	assert.Equal(t, 6, g.Total)
	assert.Equal(t, "aebiteaey", g.HardWord)
	assert.Equal(t, []ruleView{{Kind: "Convert", Target: "r", Destination: "e", Text: "Convert r to e"}}, g.Rules)
	assert.NotContains(t, rec.Body.String(), "arbitrary")

	rec = do(t, h, http.MethodPost, "/game/guess", map[string]string{"gameId": g.GameID, "guess": "arbitrery"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[guessRes](t, rec)
	assert.False(t, res.Correct)
	assert.Equal(t, 0, res.Game.Index)

	for i, secret := range []string{"  ARBITRARY ", "warranties", "signatures", "horoscope", "helicopter", "convicted"} {
		rec = do(t, h, http.MethodPost, "/game/guess", map[string]string{"gameId": g.GameID, "guess": secret}, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		res = decode[guessRes](t, rec)
		require.True(t, res.Correct, "round %d", i)
		assert.Equal(t, i+1, res.Game.Index)
	}
	assert.True(t, res.Game.Complete)
	assert.Empty(t, res.Game.HardWord)
	require.Len(t, res.Game.Rules, 6)
	assert.Equal(t, ruleView{Kind: "Duplicate", Target: "c", Count: 2, Text: "Duplicate c 2 times"}, res.Game.Rules[4])
	assert.Equal(t, ruleView{Kind: "Switch", Target: "c", Destination: "e", Text: "c switches position with the next e"}, res.Game.Rules[5])

	rec = do(t, h, http.MethodPost, "/game/guess", map[string]string{"gameId": g.GameID, "guess": "convicted"}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodGet, "/game/"+g.GameID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[gameView](t, rec).Complete)

	rec = do(t, h, http.MethodDelete, "/game/"+g.GameID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodGet, "/game/"+g.GameID, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSeededGamesMatch(t *testing.T) {
	h := newServer(t)
	seed := int64(7)

	var views []gameView
	for i := 0; i < 2; i++ {
		rec := do(t, h, http.MethodPost, "/game/new", map[string]any{"mode": "random", "seed": seed}, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		views = append(views, decode[gameView](t, rec))
	}
	a, b := views[0], views[1]
	assert.NotEqual(t, a.GameID, b.GameID)
	require.NotNil(t, a.Seed)
	assert.Equal(t, seed, *a.Seed)
	assert.Equal(t, 8, a.Total)
	assert.Len(t, a.Rules, 1)
	assert.Equal(t, "Convert", a.Rules[0].Kind)
	if diff := cmp.Diff(a.Rules, b.Rules); diff != "" {
		t.Errorf("same seed, different rules (-a +b):\n%s", diff)
	}
	assert.Equal(t, a.HardWord, b.HardWord)
}

func TestUnseededGameReportsSeed(t *testing.T) {
	h := newServer(t)
	rec := do(t, h, http.MethodPost, "/game/new", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	g := decode[gameView](t, rec)
	require.NotNil(t, g.Seed)
	assert.GreaterOrEqual(t, *g.Seed, int64(0))
}

func TestDailyGamesMatch(t *testing.T) {
	h := newServer(t)
	a := decode[gameView](t, do(t, h, http.MethodPost, "/game/new", map[string]string{"mode": "daily"}, ""))
	b := decode[gameView](t, do(t, h, http.MethodPost, "/game/new", map[string]string{"mode": "daily"}, ""))
	assert.NotEmpty(t, a.Date)
	assert.Equal(t, a.Date, b.Date)
	assert.Equal(t, a.HardWord, b.HardWord)
	assert.Equal(t, a.Rules, b.Rules)
}

func TestNewGameErrors(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodPost, "/game/new", map[string]string{"mode": "hard"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/game/new", map[string]string{"mode": "challenge", "challenge": "missing"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "challenge_not_found")

	rec = do(t, h, http.MethodPost, "/game/guess", map[string]string{"gameId": "nope", "guess": "x"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "game_not_found")
}

func TestAuthoredChallenge(t *testing.T) {
	h := newServer(t)
	body := map[string]any{
		"name": "my-first",
		"rounds": []any{
			map[string]any{"rule": map[string]any{"Switch": map[string]string{"target": "o", "destination": "l"}}, "word": "doorbells"},
			map[string]any{"rule": map[string]any{"Remove": "h"}, "word": "horoscope"},
		},
	}

	rec := do(t, h, http.MethodPost, "/challenges", body, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/auth/signup", map[string]string{"username": "author", "password": "password123"}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var token string
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)

	rec = do(t, h, http.MethodGet, "/auth/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "author", decode[map[string]string](t, rec)["username"])

	bad := map[string]any{"name": "broken", "rounds": []any{map[string]any{"rule": map[string]any{"Flip": "x"}, "word": "xylophone"}}}
	rec = do(t, h, http.MethodPost, "/challenges", bad, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	huge := map[string]any{"name": "huge", "rounds": []any{map[string]any{
		"rule": map[string]any{"Duplicate": map[string]any{"target": "a", "count": 1000000000000}},
		"word": "aaaa",
	}}}
	rec = do(t, h, http.MethodPost, "/challenges", huge, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "malformed_challenge")

	rec = do(t, h, http.MethodPost, "/challenges", body, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/challenges", body, token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodGet, "/challenges", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Challenges []challenge.Entry `json:"challenges"`
	}](t, rec)
	require.NotEmpty(t, list.Challenges)
	assert.True(t, list.Challenges[0].Tutorial)
	var names []string
	for _, e := range list.Challenges {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "my-first")

	rec = do(t, h, http.MethodPost, "/game/new", map[string]string{"mode": "challenge", "challenge": "my-first"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dllrbeoos", decode[gameView](t, rec).HardWord)
}

func TestLogin(t *testing.T) {
	h := newServer(t)
	creds := map[string]string{"username": "player", "password": "password123"}
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/auth/signup", creds, "").Code)

	rec := do(t, h, http.MethodPost, "/auth/signup", map[string]string{"username": "PLAYER", "password": "password123"}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/auth/login", map[string]string{"username": "player", "password": "wrong-password"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/auth/login", creds, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Set-Cookie"), cookieName+"="))

	rec = do(t, h, http.MethodGet, "/auth/me", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/auth/signup", map[string]string{"username": "x", "password": "short"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
