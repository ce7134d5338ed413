package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          *UserRepository
	TokenRepository         *TokenRepository
	PropertyRepository      *PropertyRepository
	DocumentRepository      *DocumentRepository
	UpdateRequestRepository *UpdateRequestRepository
	MessageRepository       *MessageRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(db),
		TokenRepository:         NewTokenRepository(db),
		PropertyRepository:      NewPropertyRepository(db),
		DocumentRepository:      NewDocumentRepository(db),
		UpdateRequestRepository: NewUpdateRequestRepository(db),
		MessageRepository:       NewMessageRepository(db),
	}
}
