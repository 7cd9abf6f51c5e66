package storage

//go:generate mockgen -package mocks -destination mocks/mock_storage.go github.com/kasuboski/guessr/pkg/storage Storage
