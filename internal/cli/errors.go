package cli

import (
	"errors"
	"fmt"
	"net/http"

	"trackup/internal/api"
)

var errAborted = errors.New("aborted")

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

// describe turns a backend 404 into a notFoundError for kind/id.
func describe(err error, kind, id string) error {
	if api.IsStatus(err, http.StatusNotFound) {
		return errNotFound(kind, id)
	}
	return err
}
