// Package response writes the storefront API's JSON envelopes.
//
// Success bodies carry "success": true plus endpoint-specific fields.
// Error bodies carry a stable machine-readable "error" kind and a
// human-readable "message":
//
//	{"error": "invalid_items", "message": "Cart must contain at least one item"}
package response

import (
	"encoding/json"
	"net/http"
)

// Map builds an ad-hoc JSON body.
type Map = map[string]interface{}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// OK writes a 200 success envelope merged from fields.
func OK(w http.ResponseWriter, fields Map) {
	JSON(w, http.StatusOK, withSuccess(fields))
}

// Created writes a 201 success envelope merged from fields.
func Created(w http.ResponseWriter, fields Map) {
	JSON(w, http.StatusCreated, withSuccess(fields))
}

// Fail writes an error envelope with a machine-readable kind.
func Fail(w http.ResponseWriter, status int, kind, message string) {
	JSON(w, status, Map{"error": kind, "message": message})
}

// BadRequest writes a 400 with the given kind and message.
func BadRequest(w http.ResponseWriter, kind, message string) {
	Fail(w, http.StatusBadRequest, kind, message)
}

// NotFound writes a 404 with kind "not_found".
func NotFound(w http.ResponseWriter, message string) {
	Fail(w, http.StatusNotFound, "not_found", message)
}

// ServerError writes a 500 with the given kind and message.
func ServerError(w http.ResponseWriter, kind, message string) {
	Fail(w, http.StatusInternalServerError, kind, message)
}

func withSuccess(fields Map) Map {
	body := Map{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return body
}
