package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"uadmin/internal/domain"
	apperrors "uadmin/internal/errors"
	"uadmin/internal/gateway"
	"uadmin/internal/logging"
	"uadmin/internal/repository/sqlite"
	"uadmin/internal/validation"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

// maxBody bounds request bodies.
const maxBody = 1 << 20

type errorBody struct {
	Error  string                      `json:"error"`
	Fields map[validation.Field]string `json:"fields,omitempty"`
}

// userUpdate is the PUT /users/{id} body. A missing tasks field leaves the
// stored tasks alone; an empty array deletes them all.
type userUpdate struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Email string         `json:"email"`
	Tasks *[]domain.Task `json:"tasks"`
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dbUsers, err := s.repo.ListUsers(ctx)
	if err != nil {
		writeAppError(w, err)
		return
	}
	dbTasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		writeAppError(w, err)
		return
	}

	byUser := make(map[int64][]*sqlite.Task, len(dbUsers))
	for _, t := range dbTasks {
		byUser[t.UserID] = append(byUser[t.UserID], t)
	}

	users := make([]domain.User, 0, len(dbUsers))
	for _, u := range dbUsers {
		user, err := s.mapper.User.FromDatabase(*u, byUser[u.ID])
		if err != nil {
			writeAppError(w, err)
			return
		}
		users = append(users, user)
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user, err := s.loadUser(r, id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) loadUser(r *http.Request, id int64) (domain.User, error) {
	dbUser, err := s.repo.GetUser(r.Context(), id)
	if err != nil {
		return domain.User{}, err
	}
	dbTasks, err := s.repo.ListTasksByUser(r.Context(), id)
	if err != nil {
		return domain.User{}, err
	}
	return s.mapper.User.FromDatabase(*dbUser, dbTasks)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var in gateway.NewUser
	if !decode(w, r, &in) {
		return
	}
	if err := validation.ValidateNewUser(in.Name, in.Email, in.Password); err != nil {
		writeAppError(w, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		writeAppError(w, apperrors.WrapError(err, apperrors.ErrorTypeInvalidInput, "password cannot be hashed"))
		return
	}
	dbUser := &sqlite.User{Name: in.Name, Email: in.Email, PasswordHash: string(hash)}
	if err := s.repo.CreateUser(r.Context(), dbUser); err != nil {
		writeAppError(w, err)
		return
	}

	user, err := s.mapper.User.FromDatabase(*dbUser, nil)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in userUpdate
	if !decode(w, r, &in) {
		return
	}
	if in.ID != 0 && in.ID != id {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("body id %d does not match path id %d", in.ID, id))
		return
	}
	if err := validation.ValidateUserUpdate(in.Name, in.Email); err != nil {
		writeAppError(w, err)
		return
	}

	ctx := r.Context()
	dbUser := s.mapper.User.ToDatabase(domain.User{ID: id, Name: in.Name, Email: in.Email})
	if err := s.repo.UpdateUser(ctx, &dbUser); err != nil {
		writeAppError(w, err)
		return
	}
	if in.Tasks != nil {
		dbTasks := make([]*sqlite.Task, 0, len(*in.Tasks))
		for _, t := range *in.Tasks {
			dbTask := s.mapper.Task.ToDatabase(t)
			dbTasks = append(dbTasks, &dbTask)
		}
		if err := s.repo.ReplaceUserTasks(ctx, id, dbTasks); err != nil {
			writeAppError(w, err)
			return
		}
	}

	user, err := s.loadUser(r, id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.repo.DeleteUser(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var in gateway.NewTask
	if !decode(w, r, &in) {
		return
	}
	if in.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	dbTask := s.mapper.Task.ToDatabase(domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		UserID:      in.UserID,
	})
	if err := s.repo.CreateTask(r.Context(), &dbTask); err != nil {
		writeAppError(w, err)
		return
	}

	task, err := s.mapper.Task.FromDatabase(dbTask)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in domain.Task
	if !decode(w, r, &in) {
		return
	}
	in.ID = id

	dbTask := s.mapper.Task.ToDatabase(in)
	if err := s.repo.UpdateTask(r.Context(), &dbTask); err != nil {
		writeAppError(w, err)
		return
	}
	stored, err := s.repo.GetTask(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	task, err := s.mapper.Task.FromDatabase(*stored)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.repo.DeleteTask(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid id %q", raw))
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Errorf("server: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// writeAppError maps an error to its HTTP status. Unclassified errors are
// logged and reported as 500 without detail.
func writeAppError(w http.ResponseWriter, err error) {
	var ve *validation.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: ve.GetUserFriendlyMessage(), Fields: ve.Messages()})
		return
	}

	status := apperrors.HTTPStatus(err)
	if apperrors.ShouldLogError(err) {
		logging.Errorf("server: %v", err)
	}
	if status == http.StatusInternalServerError {
		writeError(w, status, "internal server error")
		return
	}
	writeError(w, status, apperrors.GetUserMessage(err))
}
