package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"naebak/models"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[handler] failed to marshal response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, kind, message string) {
	respondWithJSON(w, code, models.ErrorResponse{Error: kind, Message: message})
}

// respondWithServiceError maps the engine's typed errors onto HTTP statuses.
// Anything unrecognized is a 500 with the detail kept in the server log.
func respondWithServiceError(w http.ResponseWriter, err error) {
	var (
		validationErr *models.ValidationError
		transitionErr *models.IllegalTransitionError
		assignErr     *models.InvalidAssignmentError
		ratingErr     *models.InvalidRatingError
		notFoundErr   *models.NotFoundError
		conflictErr   *models.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, "validation_error", validationErr.Error())
	case errors.As(err, &transitionErr):
		respondWithError(w, http.StatusUnprocessableEntity, "illegal_transition", transitionErr.Error())
	case errors.As(err, &assignErr):
		respondWithError(w, http.StatusUnprocessableEntity, "invalid_assignment", assignErr.Error())
	case errors.As(err, &ratingErr):
		respondWithError(w, http.StatusUnprocessableEntity, "invalid_rating", ratingErr.Error())
	case errors.As(err, &notFoundErr):
		respondWithError(w, http.StatusNotFound, "not_found", notFoundErr.Error())
	case errors.As(err, &conflictErr):
		respondWithError(w, http.StatusConflict, "conflict", conflictErr.Error())
	default:
		log.Printf("[handler] internal error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
