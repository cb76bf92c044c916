// Package httpjson holds the small JSON response helpers shared by every
// handler. All endpoints speak application/json, including failures, which
// are always the shape {"error": "..."} or {"message": "..."}.
package httpjson

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// Respond writes v as JSON with the given status.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"error": msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	Respond(w, status, map[string]string{"error": msg})
}

// Message writes {"message": msg} with the given status.
func Message(w http.ResponseWriter, status int, msg string) {
	Respond(w, status, map[string]string{"message": msg})
}

// DBErrorMessage maps a storage failure to the client-facing message:
// network-level database errors get a dedicated message, everything else
// gets the operation's generic fallback.
func DBErrorMessage(err error, fallback string) string {
	if IsNetworkError(err) {
		return "Database connection failed. Please try again later."
	}
	return fallback
}

// IsNetworkError reports whether err is a network-level database failure
// (unreachable server, timed-out server selection) as opposed to an
// operation-level one.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// Decode parses the request body as JSON into dst. It returns false after
// writing a 400 when the body is missing or malformed.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		Error(w, http.StatusBadRequest, "Invalid request body.")
		return false
	}
	return true
}
