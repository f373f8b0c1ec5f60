package store

import "github.com/MKhiriev/go-form-keeper/internal/logger"

// Storages bundles the repositories sharing one [DB].
type Storages struct {
	DB                 *DB
	FormRepository     FormRepository
	ResponseRepository ResponseRepository
	TableRepository    TableRepository
}

func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		DB:                 db,
		FormRepository:     NewFormRepository(db, logger),
		ResponseRepository: NewResponseRepository(db, logger),
		TableRepository:    NewTableRepository(db, logger),
	}
}
