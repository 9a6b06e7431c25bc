package domain

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrNotInCollection      = errors.New("record is not in the current collection")
	ErrStoreClosed          = errors.New("store is closed")
	ErrSessionBusy          = errors.New("form is already submitting")
	ErrSessionClosed        = errors.New("form is not open")
	ErrConfirmationRequired = errors.New("delete must be confirmed first")
)

// NetworkError: request tidak mendapat response sama sekali.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError: server menjawab dengan status non-2xx.
type ServerError struct {
	Op      string
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: server returned status %d - %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: server returned status %d", e.Op, e.Status)
}

// Validation reports whether the server rejected the submitted fields.
func (e *ServerError) Validation() bool {
	return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
}

func (e *ServerError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// ValidationErrors is produced locally, before any request is sent. Keyed by field name.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Add(field, reason string) {
	if _, exists := v[field]; !exists {
		v[field] = reason
	}
}

func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// UserMessage mengubah error apa pun menjadi teks notifikasi untuk user.
func UserMessage(err error) string {
	var netErr *NetworkError
	var srvErr *ServerError
	var valErr ValidationErrors
	switch {
	case err == nil:
		return ""
	case errors.As(err, &valErr):
		return "Data tidak valid: " + strings.TrimPrefix(valErr.Error(), "validation failed: ")
	case errors.As(err, &netErr):
		return "Tidak dapat terhubung ke server"
	case errors.As(err, &srvErr):
		if srvErr.Message != "" {
			return fmt.Sprintf("Server menolak permintaan (%d): %s", srvErr.Status, srvErr.Message)
		}
		return fmt.Sprintf("Server menolak permintaan (%d)", srvErr.Status)
	case errors.Is(err, ErrNotInCollection):
		return "Data tidak ditemukan"
	case errors.Is(err, ErrConfirmationRequired):
		return "Hapus data harus dikonfirmasi"
	default:
		return err.Error()
	}
}
