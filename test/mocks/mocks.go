// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// Regenerate with `go generate ./test/mocks` from the repository root.
package mocks

//go:generate mockgen -source=../../internal/core/ports/listing_repository.go -destination=listing_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/listing_service.go -destination=listing_service_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/cache.go -destination=cache_repository_mock.go -package=mocks
