package handlers

import "github.com/go-chi/chi/v5"

// Mountable is a feature handler that knows where its routes live.
type Mountable interface {
	Mount(r chi.Router)
}
