// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres, leveldb) inside this directory.
package repository

import "errors"

var (
	// ErrNotFound is returned when no record lives at the requested address.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when a record already occupies the address.
	ErrAlreadyExists = errors.New("record already exists")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
