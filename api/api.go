// Package api exposes read-only HTTP inspection endpoints for the
// trust anchor store.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trustdns/anchord/trustanchor"
)

const (
	contentTypeHeader = "content-type"
	jsonContentType   = "application/json"
)

// AnchorsResponse is the payload of the anchor listing endpoint
type AnchorsResponse struct {
	Positive     []string `json:"positive"`
	Negative     []string `json:"negative"`
	SkippedLines int      `json:"skippedLines"`
}

// NegativeLookupResponse is the payload of the negative lookup endpoint
type NegativeLookupResponse struct {
	Name  string `json:"name"`
	Match bool   `json:"match"`
}

// StoreEndpoint serves the contents of a trust anchor store
type StoreEndpoint struct {
	store *trustanchor.Store
}

// RegisterEndpoint registers the inspection endpoints on the router
func RegisterEndpoint(router chi.Router, store *trustanchor.Store) {
	e := &StoreEndpoint{store: store}

	router.Get("/api/anchors", e.apiListAnchors)
	router.Get("/api/anchors/negative/{name}", e.apiLookupNegative)
}

func (e *StoreEndpoint) apiListAnchors(rw http.ResponseWriter, _ *http.Request) {
	rw.Header().Set(contentTypeHeader, jsonContentType)

	response := AnchorsResponse{
		Positive:     e.store.DumpPositive(),
		Negative:     e.store.DumpNegative(),
		SkippedLines: e.store.Stats().SkippedLines,
	}

	_ = json.NewEncoder(rw).Encode(response)
}

func (e *StoreEndpoint) apiLookupNegative(rw http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")

	rw.Header().Set(contentTypeHeader, jsonContentType)

	_ = json.NewEncoder(rw).Encode(NegativeLookupResponse{
		Name:  name,
		Match: e.store.LookupNegative(name),
	})
}
