// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Kotelnikov

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dkotelnikov/user-service/internal/logger"
	"github.com/dkotelnikov/user-service/internal/utils"
	"github.com/dkotelnikov/user-service/internal/validators"
	"github.com/dkotelnikov/user-service/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	req, err := parseListUsersRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listUsers").Msg("invalid query parameters")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	users, pagination, err := h.services.UserService.ListUsers(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listUsers").Msg("error listing users")
		writeServiceError(w, err)
		return
	}

	if users == nil {
		users = []models.User{}
	}

	utils.WriteJSON(w, models.ListUsersResponse{Users: users, Pagination: pagination}, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id := chi.URLParam(r, "id")

	user, err := h.services.UserService.GetUser(r.Context(), id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getUser").Str("id", id).Msg("error getting user")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Str("func", "*Handler.createUser").Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, decodeErrorMessage(err))
		return
	}

	created, err := h.services.UserService.CreateUser(r.Context(), user)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createUser").Msg("error creating user")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id := chi.URLParam(r, "id")

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Str("func", "*Handler.updateUser").Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, decodeErrorMessage(err))
		return
	}

	updated, err := h.services.UserService.UpdateUser(r.Context(), id, update)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateUser").Str("id", id).Msg("error updating user")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id := chi.URLParam(r, "id")

	if err := h.services.UserService.DeleteUser(r.Context(), id); err != nil {
		log.Err(err).Str("func", "*Handler.deleteUser").Str("id", id).Msg("error deleting user")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "User deleted successfully"}, http.StatusOK)
}

func (h *Handler) restoreUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id := chi.URLParam(r, "id")

	restored, err := h.services.UserService.RestoreUser(r.Context(), id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.restoreUser").Str("id", id).Msg("error restoring user")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, restored, http.StatusOK)
}

// parseListUsersRequest extracts pagination and filter values from the query
// string. Absent values stay zero so the service applies its defaults;
// malformed values are rejected rather than silently ignored.
func parseListUsersRequest(r *http.Request) (models.ListUsersRequest, error) {
	var req models.ListUsersRequest

	query := r.URL.Query()

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return req, errors.New("page must be an integer")
		}
		req.Page = page
	}

	if raw := query.Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil {
			return req, errors.New("per_page must be an integer")
		}
		req.PerPage = perPage
	}

	if raw := query.Get("is_active"); raw != "" {
		isActive, err := strconv.ParseBool(raw)
		if err != nil {
			return req, errors.New("is_active must be a boolean")
		}
		req.Filter.IsActive = &isActive
	}

	if raw := query.Get("min_age"); raw != "" {
		minAge, err := strconv.Atoi(raw)
		if err != nil {
			return req, errors.New("min_age must be an integer")
		}
		req.Filter.MinAge = &minAge
	}

	if raw := query.Get("max_age"); raw != "" {
		maxAge, err := strconv.Atoi(raw)
		if err != nil {
			return req, errors.New("max_age must be an integer")
		}
		req.Filter.MaxAge = &maxAge
	}

	return req, nil
}

// decodeErrorMessage turns body-decoding failures into user-facing text.
// A wrong JSON type on the age field reports the validation message instead
// of the raw decoder error.
func decodeErrorMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == "age" {
		return validators.ErrAgeNotAnInteger.Error()
	}
	return "invalid JSON was passed"
}
