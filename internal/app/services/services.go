package services

import (
	"github.com/rs/zerolog"

	"github.com/akwareg/akwareg-backend/internal/app/repositories"
	"github.com/akwareg/akwareg-backend/internal/pkg/auth"
	"github.com/akwareg/akwareg-backend/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	AuthService         *AuthService
	PropertyService     *PropertyService
	VerificationService *VerificationService
	MessageService      *MessageService
	UserService         *UserService
	StatsService        *StatsService
}

// NewServices wires every service onto the repositories and shared
// infrastructure.
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	storage filestorage.FileStorage,
	pusher MessagePusher,
	logger zerolog.Logger,
) *Services {
	return &Services{
		AuthService:         NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService, logger),
		PropertyService:     NewPropertyService(repos.PropertyRepository, repos.DocumentRepository, storage, logger),
		VerificationService: NewVerificationService(repos.PropertyRepository, repos.UpdateRequestRepository, logger),
		MessageService:      NewMessageService(repos.MessageRepository, repos.UserRepository, pusher, logger),
		UserService:         NewUserService(repos.UserRepository, logger),
		StatsService:        NewStatsService(repos.PropertyRepository, repos.UserRepository, repos.UpdateRequestRepository, logger),
	}
}
