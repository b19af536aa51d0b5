package repository

import "context"

// NoneBackend stands in when no storage environment exists. Every operation
// fails with ErrUnavailable.
type NoneBackend struct{}

func (NoneBackend) Load(context.Context, string) ([]byte, error) { return nil, ErrUnavailable }
func (NoneBackend) Save(context.Context, string, []byte) error { return ErrUnavailable }
func (NoneBackend) Delete(context.Context, string) error { return ErrUnavailable }
func (NoneBackend) Purge(context.Context) error { return ErrUnavailable }
func (NoneBackend) Close() error { return nil }
