package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PierrickDossin/AymanProject/internal/auth"
	"github.com/PierrickDossin/AymanProject/internal/database"
	"github.com/PierrickDossin/AymanProject/internal/events"
	"github.com/PierrickDossin/AymanProject/internal/repository"
	"github.com/PierrickDossin/AymanProject/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T, opts ...func(*Deps)) *testServer {
	db, err := database.Open(database.Options{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })

	userRepo := repository.NewUserRepo(db)
	workoutRepo := repository.NewWorkoutRepo(db)
	pub := events.Nop{}

	d := Deps{
		Users:        service.NewUserService(userRepo, auth.NewTokenIssuer("test-secret", time.Hour), auth.NewMemorySessionStore()),
		Meals:        service.NewMealService(repository.NewMealRepo(db), userRepo),
		Goals:        service.NewGoalService(repository.NewGoalRepo(db), userRepo, pub),
		Exercises:    service.NewExerciseService(repository.NewExerciseRepo(db)),
		Workouts:     service.NewWorkoutService(workoutRepo, userRepo, pub),
		ExerciseLogs: service.NewExerciseLogService(repository.NewExerciseLogRepo(db)),
		Analyst:      service.NewAnalystService(workoutRepo),
		FrontendURL:  "http://localhost:8080",
		LoginRate:    100,
		LoginBurst:   100,
	}
	for _, o := range opts {
		o(&d)
	}
	return &testServer{t: t, router: NewRouter(d)}
}

func (s *testServer) do(method, path string, body any, header ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (s *testServer) createUser(username string) map[string]any {
	w := s.do(http.MethodPost, "/api/users", gin.H{
		"username":  username,
		"firstName": "Test",
		"lastName":  "User",
		"email":     username + "@example.com",
		"password":  "secret123",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]any](s.t, w)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestCreateUserValidationAndConflict(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/users", gin.H{"username": "al", "email": "nope"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[struct {
		Error   string               `json:"error"`
		Details []service.FieldError `json:"details"`
	}](t, w)
	assert.Equal(t, "Validation error", body.Error)
	fields := map[string]string{}
	for _, d := range body.Details {
		fields[d.Field] = d.Rule
	}
	assert.Equal(t, "min", fields["username"])
	assert.Equal(t, "email", fields["email"])
	assert.Equal(t, "required", fields["password"])

	u := s.createUser("alice")
	assert.NotContains(t, u, "password")

	w = s.do(http.MethodPost, "/api/users", gin.H{
		"username": "alice2", "firstName": "A", "lastName": "B",
		"email": "alice@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Email already exists"}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/users/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
}

func TestMalformedBody(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Validation error")
}

func TestLoginLogoutFlow(t *testing.T) {
	s := newTestServer(t)
	s.createUser("alice")

	w := s.do(http.MethodPost, "/api/users/login", gin.H{"email": "alice@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/users/login", gin.H{"email": "alice@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}](t, w)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "alice", login.User["username"])

	bearer := "Bearer " + login.Token
	w = s.do(http.MethodGet, "/api/exercise-logs", nil, "Authorization", bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/users/logout", nil, "Authorization", bearer)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/api/exercise-logs", nil, "Authorization", bearer)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/users/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMealRoutes(t *testing.T) {
	s := newTestServer(t)
	u := s.createUser("alice")
	userID := u["id"].(string)

	w := s.do(http.MethodGet, "/api/meals", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"userId is required"}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/meals/totals?userId="+userID, nil)
	assert.JSONEq(t, `{"error":"userId and date are required"}`, w.Body.String())

	for _, cal := range []float64{300, 500} {
		w = s.do(http.MethodPost, "/api/meals", gin.H{
			"userId": userID, "name": "Meal", "type": "lunch", "date": "2024-01-01",
			"calories": cal, "protein": 10, "carbs": 20, "fat": 5,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/meals/totals?userId="+userID+"&date=2024-01-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	totals := decode[map[string]float64](t, w)
	assert.Equal(t, 800.0, totals["totalCalories"])
	assert.Equal(t, 20.0, totals["totalProtein"])

	w = s.do(http.MethodPost, "/api/meals", gin.H{
		"userId": userID, "name": "Bad", "type": "brunch", "date": "01/01/2024",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"type"`)
	assert.Contains(t, w.Body.String(), `"field":"date"`)

	w = s.do(http.MethodDelete, "/api/meals/missing/items/x", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGoalProgressRoute(t *testing.T) {
	s := newTestServer(t)
	userID := s.createUser("alice")["id"].(string)

	w := s.do(http.MethodPost, "/api/goals", gin.H{
		"userId": userID, "name": "Cut", "type": "weight",
		"currentValue": 80, "goalValue": 75, "metric": "kg", "targetDate": "2024-06-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	goalID := decode[map[string]any](t, w)["id"].(string)

	w = s.do(http.MethodPatch, "/api/goals/"+goalID+"/progress", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPatch, "/api/goals/"+goalID+"/progress", gin.H{"currentValue": 75.3})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", decode[map[string]any](t, w)["status"])

	w = s.do(http.MethodGet, "/api/goals?userId="+userID+"&status=active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(http.MethodGet, "/api/goals/"+goalID+"/progress", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode[map[string]any](t, w)["isCompleted"])

	w = s.do(http.MethodPost, "/api/goals", gin.H{
		"userId": "ghost", "name": "X", "type": "weight", "currentValue": 2, "goalValue": 1, "metric": "kg",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User does not exist")
}

func TestWorkoutRoutes(t *testing.T) {
	s := newTestServer(t)
	userID := s.createUser("alice")["id"].(string)

	w := s.do(http.MethodGet, "/api/workouts/today?userId="+userID+"&date=2024-01-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	w = s.do(http.MethodPost, "/api/workouts", gin.H{
		"userId": userID, "name": "Legs", "scheduledDate": "2024-01-01", "totalDuration": 5,
		"exercises": []gin.H{
			{"exerciseName": "Squat", "sets": 5, "reps": "5", "duration": 20},
			{"exerciseName": "Lunge", "sets": 3, "reps": "10", "duration": 25},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	assert.Equal(t, 45.0, created["totalDuration"])
	id := created["id"].(string)

	w = s.do(http.MethodPatch, "/api/workouts/"+id+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodPatch, "/api/workouts/"+id+"/skip", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Workout is already completed")

	w = s.do(http.MethodPost, "/api/workouts/"+id+"/duplicate", gin.H{"newDate": "2024-01-08"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "planned", decode[map[string]any](t, w)["status"])

	w = s.do(http.MethodGet, "/api/workouts/stats/weekly?userId="+userID, nil)
	assert.JSONEq(t, `{"error":"userId, weekStart, and weekEnd are required"}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/workouts/stats/weekly?userId="+userID+"&weekStart=2024-01-01&weekEnd=2024-01-07", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalWorkouts":1,"completedWorkouts":1,"plannedWorkouts":0,"skippedWorkouts":0}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/workouts/upcoming?userId="+userID+"&fromDate=2024-01-01&limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, "/api/workouts/"+id, nil)
	assert.JSONEq(t, `{"message":"Workout deleted successfully"}`, w.Body.String())
	w = s.do(http.MethodDelete, "/api/workouts/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExerciseSeedRoute(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/exercises/seed", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Successfully seeded")

	w = s.do(http.MethodPost, "/api/exercises/seed", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Exercises already seeded"}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/exercises?muscleGroup=chest", nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, e := range decode[[]map[string]any](t, w) {
		assert.Equal(t, "chest", e["muscleGroup"])
	}
}

func TestExerciseLogsRequireIdentity(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/exercise-logs", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/exercise-logs", gin.H{
		"exerciseName": "Squat", "weight": 100, "reps": 5, "sets": 5, "workoutType": "strength",
	}, "User-Id", "u-1")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[map[string]any](t, w)["id"].(string)

	w = s.do(http.MethodDelete, "/api/exercise-logs/"+id, nil, "User-Id", "u-2")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/exercise-logs/history/Squat", nil, "User-Id", "u-1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)
}

func TestAnalyzeRoute(t *testing.T) {
	s := newTestServer(t)
	userID := s.createUser("alice")["id"].(string)

	w := s.do(http.MethodPost, "/api/agents/analyze", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/agents/analyze", gin.H{"userId": userID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Start logging to get insights")
}

func TestLoginIsRateLimited(t *testing.T) {
	s := newTestServer(t, func(d *Deps) {
		d.LoginRate = 0.001
		d.LoginBurst = 2
	})
	login := gin.H{"email": "nobody@example.com", "password": "whatever"}

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/users/login", login).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/users/login", login).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(http.MethodPost, "/api/users/login", login).Code)
}

func TestIPLimiterForgetsIdleVisitors(t *testing.T) {
	l := newIPLimiter(0.001, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.2"))

	now = now.Add(limiterIdleTTL + time.Second)
	assert.True(t, l.allow("10.0.0.1"))
	assert.Len(t, l.visitors, 1)
}

type fakeOAuth struct {
	profile *auth.GoogleProfile
	err     error
}

func (f *fakeOAuth) AuthCodeURL(state string) string {
	return "https://accounts.example.com/o/oauth2/auth?state=" + url.QueryEscape(state)
}

func (f *fakeOAuth) Exchange(context.Context, string) (*auth.GoogleProfile, error) {
	return f.profile, f.err
}

func TestOAuthRoutesWithoutProvider(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusServiceUnavailable, s.do(http.MethodGet, "/auth/google", nil).Code)
	w := s.do(http.MethodGet, "/auth/facebook", nil)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.JSONEq(t, `{"error":"Facebook OAuth not yet implemented"}`, w.Body.String())
	assert.Equal(t, http.StatusNotImplemented, s.do(http.MethodGet, "/auth/apple", nil).Code)
}

func TestGoogleCallback(t *testing.T) {
	provider := &fakeOAuth{profile: &auth.GoogleProfile{Email: "Dana@Example.com", GivenName: "Dana", FamilyName: "Scully"}}
	s := newTestServer(t, func(d *Deps) { d.Google = provider })

	w := s.do(http.MethodGet, "/auth/google", nil)
	require.Equal(t, http.StatusFound, w.Code)
	consent, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	state := consent.Query().Get("state")
	require.NotEmpty(t, state)

	w = s.do(http.MethodGet, "/auth/google/callback?state="+url.QueryEscape(state)+"&code=abc", nil)
	require.Equal(t, http.StatusFound, w.Code)
	dest, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth/callback", dest.Path)
	assert.NotEmpty(t, dest.Query().Get("token"))

	var user map[string]string
	require.NoError(t, json.Unmarshal([]byte(dest.Query().Get("user")), &user))
	assert.Equal(t, "dana@example.com", user["email"])
	assert.Equal(t, "dana", user["username"])
	assert.Equal(t, "Scully", user["lastName"])

	// states are single use
	w = s.do(http.MethodGet, "/auth/google/callback?state="+url.QueryEscape(state)+"&code=abc", nil)
	assert.Equal(t, "http://localhost:8080/login?error=auth_failed", w.Header().Get("Location"))
}

func TestGoogleCallbackExchangeFailure(t *testing.T) {
	provider := &fakeOAuth{err: errors.New("boom")}
	s := newTestServer(t, func(d *Deps) { d.Google = provider })

	w := s.do(http.MethodGet, "/auth/google", nil)
	consent, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)

	w = s.do(http.MethodGet, "/auth/google/callback?state="+url.QueryEscape(consent.Query().Get("state"))+"&code=abc", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:8080/login?error=auth_failed", w.Header().Get("Location"))
}

func TestStateStoreExpires(t *testing.T) {
	s := newStateStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Put("fresh")
	s.Put("stale")
	assert.True(t, s.Take("fresh"))
	assert.False(t, s.Take("fresh"))

	now = now.Add(oauthStateTTL + time.Second)
	assert.False(t, s.Take("stale"))
	assert.False(t, s.Take("never-issued"))
}

func TestRequiredMessage(t *testing.T) {
	assert.Equal(t, "userId is required", requiredMessage([]string{"userId"}))
	assert.Equal(t, "userId and date are required", requiredMessage([]string{"userId", "date"}))
	assert.Equal(t, "a, b, and c are required", requiredMessage([]string{"a", "b", "c"}))
}

func (s *testServer) login(email string) string {
	w := s.do(http.MethodPost, "/api/users/login", gin.H{"email": email, "password": "secret123"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return decode[struct {
		Token string `json:"token"`
	}](s.t, w).Token
}

func TestCreateGoalFieldRules(t *testing.T) {
	s := newTestServer(t)
	userID := s.createUser("alice")["id"].(string)

	w := s.do(http.MethodPost, "/api/goals", gin.H{
		"userId": userID, "name": "Pull-ups", "type": "performance", "currentValue": 0, "metric": "reps",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"goalValue"`)
	assert.NotContains(t, w.Body.String(), `"field":"targetDate"`)

	w = s.do(http.MethodPost, "/api/goals", gin.H{
		"userId": userID, "name": "Pull-ups", "type": "performance", "currentValue": 0, "goalValue": 10, "metric": "reps",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	goal := decode[map[string]any](t, w)
	assert.Nil(t, goal["targetDate"])

	w = s.do(http.MethodPatch, "/api/goals/"+goal["id"].(string)+"/progress", gin.H{"currentValue": 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "active", decode[map[string]any](t, w)["status"])
}

func TestCreateMealRequiresMacros(t *testing.T) {
	s := newTestServer(t)
	userID := s.createUser("alice")["id"].(string)

	w := s.do(http.MethodPost, "/api/meals", gin.H{
		"userId": userID, "name": "Lunch", "type": "lunch", "date": "2024-01-01", "calories": 500,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	for _, f := range []string{"protein", "carbs", "fat"} {
		assert.Contains(t, w.Body.String(), `"field":"`+f+`"`)
	}
	assert.NotContains(t, w.Body.String(), `"field":"calories"`)

	w = s.do(http.MethodPost, "/api/meals", gin.H{
		"userId": userID, "name": "Water", "type": "snack", "date": "2024-01-01",
		"calories": 0, "protein": 0, "carbs": 0, "fat": 0,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestSocialLoginReturnsUserWithoutSession(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/users/social-login", gin.H{"provider": "google", "email": "erin@example.com", "name": "Erin Doe"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[map[string]any](t, w)
	assert.Equal(t, "erin", body["username"])
	assert.NotContains(t, body, "token")
}

func TestEventStreamUsesBearerIdentity(t *testing.T) {
	hub := events.NewHub()
	s := newTestServer(t, func(d *Deps) { d.Hub = hub })
	userID := s.createUser("alice")["id"].(string)
	token := s.login("alice@example.com")

	w := s.do(http.MethodGet, "/ws/events?userId="+userID, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/ws/events?token=forged", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	srv := httptest.NewServer(s.router)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events?token=" + url.QueryEscape(token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.Connections(userID) == 1
	}, time.Second, 10*time.Millisecond)
}
