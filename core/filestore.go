package core

import (
	"errors"
	"io"
)

var ErrFileExists = errors.New("a file with this name already exists")

// FileStorage is any service that can store uploaded files in a namespace
// and serve them back at a public URL. Object names are caller-generated;
// Save must never overwrite an existing object.
type FileStorage interface {
	Save(namespace, name string, content io.Reader) (url string, err error)
	PublicURL(namespace, name string) string
}
