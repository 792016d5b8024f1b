package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"uadmin/internal/domain"
	apperrors "uadmin/internal/errors"
	"uadmin/internal/gateway"
	"uadmin/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupServer(t *testing.T) (*httptest.Server, sqlite.Repository) {
	t.Helper()
	repo, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	ts := httptest.NewServer(New(repo, WithHashCost(bcrypt.MinCost)).Handler())
	t.Cleanup(ts.Close)
	return ts, repo
}

func setupGateway(t *testing.T) (*gateway.HTTPGateway, sqlite.Repository) {
	t.Helper()
	ts, repo := setupServer(t)
	gw, err := gateway.NewHTTPGateway(ts.URL)
	require.NoError(t, err)
	return gw, repo
}

func TestServer_UserLifecycle(t *testing.T) {
	gw, repo := setupGateway(t)
	ctx := context.Background()

	created, err := gw.CreateUser(ctx, gateway.NewUser{Name: "Ana", Email: "ana@example.com", Password: "Secreto12"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotNil(t, created.Tasks)

	stored, err := repo.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "Secreto12", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Secreto12")))

	task, err := gw.CreateTask(ctx, gateway.NewTaskFor(created.ID, domain.NewTask("Comprar", "leche")))
	require.NoError(t, err)
	assert.Equal(t, created.ID, task.UserID)
	assert.Equal(t, domain.StatusPending, task.Status)

	users, err := gw.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Len(t, users[0].Tasks, 1)
	assert.Equal(t, "Comprar", users[0].Tasks[0].Title)

	u := users[0]
	u.Name = "Ana María"
	u.Tasks[0].Status = domain.StatusCompleted
	u.Tasks = append(u.Tasks, domain.NewTask("Nueva", ""))
	updated, err := gw.UpdateUser(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)
	require.Len(t, updated.Tasks, 2)
	assert.Equal(t, domain.StatusCompleted, updated.Tasks[0].Status)
	assert.NotZero(t, updated.Tasks[1].ID)

	require.NoError(t, gw.DeleteUser(ctx, created.ID))
	users, err = gw.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	tasks, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks, "tasks are deleted with their user")
}

func TestServer_UpdateUserReplacesTasks(t *testing.T) {
	gw, _ := setupGateway(t)
	ctx := context.Background()

	u, err := gw.CreateUser(ctx, gateway.NewUser{Name: "Ana", Email: "ana@example.com", Password: "Secreto12"})
	require.NoError(t, err)
	for _, title := range []string{"uno", "dos"} {
		_, err := gw.CreateTask(ctx, gateway.NewTaskFor(u.ID, domain.NewTask(title, "")))
		require.NoError(t, err)
	}

	u.Tasks = nil
	updated, err := gw.UpdateUser(ctx, *u)
	require.NoError(t, err)
	assert.Empty(t, updated.Tasks, "an empty list removes every task")
}

func TestServer_TaskEndpoints(t *testing.T) {
	gw, _ := setupGateway(t)
	ctx := context.Background()

	u, err := gw.CreateUser(ctx, gateway.NewUser{Name: "Ana", Email: "ana@example.com", Password: "Secreto12"})
	require.NoError(t, err)
	task, err := gw.CreateTask(ctx, gateway.NewTaskFor(u.ID, domain.NewTask("t", "d")))
	require.NoError(t, err)

	task.Status = domain.StatusInProgress
	task.Title = "cambiada"
	updated, err := gw.UpdateTask(ctx, *task)
	require.NoError(t, err)
	assert.Equal(t, "cambiada", updated.Title)
	assert.Equal(t, domain.StatusInProgress, updated.Status)
	assert.Equal(t, u.ID, updated.UserID)

	require.NoError(t, gw.DeleteTask(ctx, task.ID))
	err = gw.DeleteTask(ctx, task.ID)
	assert.True(t, gateway.IsNotFound(err))
}

func TestServer_Errors(t *testing.T) {
	gw, _ := setupGateway(t)
	ctx := context.Background()

	_, err := gw.CreateTask(ctx, gateway.NewTaskFor(999, domain.NewTask("t", "d")))
	assert.True(t, gateway.IsNotFound(err), "unknown owner")

	err = gw.DeleteUser(ctx, 999)
	assert.True(t, gateway.IsNotFound(err))

	_, err = gw.UpdateUser(ctx, domain.User{ID: 999, Name: "x", Email: "x@y.z"})
	assert.True(t, gateway.IsNotFound(err))

	_, err = gw.CreateUser(ctx, gateway.NewUser{Name: "", Email: "bad", Password: "x"})
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeRemote))
}

func TestServer_ValidationBody(t *testing.T) {
	ts, _ := setupServer(t)

	resp, err := http.Post(ts.URL+"/users", "application/json",
		strings.NewReader(`{"name":"","email":"ana@example.com","password":"Secreto12"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "El nombre es obligatorio.", body.Fields["name"])
}

func TestServer_RejectsUnknownStatus(t *testing.T) {
	ts, _ := setupServer(t)

	resp, err := http.Post(ts.URL+"/tasks", "application/json",
		strings.NewReader(`{"title":"t","description":"d","status":"Archivada","userId":1}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_RequestID(t *testing.T) {
	ts, _ := setupServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/users", nil)
	require.NoError(t, err)
	req.Header.Set(gateway.RequestIDHeader, "abc")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc", resp.Header.Get(gateway.RequestIDHeader))

	resp, err = http.Get(ts.URL + "/users")
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get(gateway.RequestIDHeader))
}

func TestServer_RoutingErrors(t *testing.T) {
	ts, _ := setupServer(t)

	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPatch, ts.URL+"/users/1", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	repo, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	defer repo.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(repo).Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/users")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
