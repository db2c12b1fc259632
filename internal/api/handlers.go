package api

import (
	"errors"
	"time"

	"github.com/evamaren/daybook/internal/assistant"
	"github.com/evamaren/daybook/internal/db"
	"github.com/evamaren/daybook/internal/remote"
	"github.com/evamaren/daybook/internal/store"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	repos        *db.Repositories
	adapter      *remote.Adapter
	registry     *store.Registry
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	generator    assistant.Generator
	chatLimiter  *attemptLimiter
	loginLimiter *attemptLimiter
}

type HandlerConfig struct {
	Database     *gorm.DB
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	Cache        *store.Cache
	Generator    assistant.Generator
}

func NewHandler(config HandlerConfig) (*Handler, error) {
	if config.Database == nil {
		return nil, errors.New("database is required")
	}
	if config.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	location := config.Location
	if location == nil {
		location = time.Local
	}

	repos := db.NewRepositories(config.Database)
	return &Handler{
		db:           config.Database,
		repos:        repos,
		adapter:      remote.NewAdapter(repos, remote.NewBus()),
		registry:     store.NewRegistry(config.Cache),
		secretKey:    []byte(config.SecretKey),
		location:     location,
		cookieSecure: config.CookieSecure,
		generator:    config.Generator,
		chatLimiter:  newAttemptLimiter(),
		loginLimiter: newAttemptLimiter(),
	}, nil
}

// Adapter exposes the sync adapter, mainly so the daemon can bridge cache
// watch events onto the change bus.
func (handler *Handler) Adapter() *remote.Adapter {
	return handler.adapter
}
