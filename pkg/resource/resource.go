// Package resource shapes a single model into its public JSON form. List
// endpoints map models through plain functions instead; a Resource is for
// detail responses where meta may be attached.
//
//	type OrderResource struct{ resource.Base }
//	func (r *OrderResource) ToArray(v interface{}) resource.Map { ... }
//
//	resource.New(&OrderResource{}, order).Respond(w)
package resource

import (
	"encoding/json"
	"net/http"
)

// Map is the output shape of a transformer.
type Map = map[string]interface{}

// Transformer converts one model value into a Map.
type Transformer interface {
	ToArray(v interface{}) Map
}

// Base is embedded by concrete resources.
type Base struct{}

// Resource pairs a model value with its transformer.
type Resource struct {
	transformer Transformer
	data        interface{}
	meta        Map
}

func New(t Transformer, data interface{}) *Resource {
	return &Resource{transformer: t, data: data}
}

// WithMeta adds a meta object beside the data.
func (r *Resource) WithMeta(meta Map) *Resource {
	r.meta = meta
	return r
}

// MarshalJSON lets a Resource nest inside another payload.
func (r *Resource) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.transformer.ToArray(r.data))
}

// Respond writes {"data": ...} with status 200.
func (r *Resource) Respond(w http.ResponseWriter) {
	out := Map{"data": r.transformer.ToArray(r.data)}
	if r.meta != nil {
		out["meta"] = r.meta
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(out) //nolint:errcheck
}
