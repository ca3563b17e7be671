package repository

// Factory describes access to domain repositories of a storage backend.
type Factory interface {
	Users() UserRepository
}
