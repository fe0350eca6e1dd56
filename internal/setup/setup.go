package setup

import (
	"github.com/waypost-dev/waypost/internal/config"
	"github.com/waypost-dev/waypost/internal/handler"
	"github.com/waypost-dev/waypost/internal/middleware"
	"github.com/waypost-dev/waypost/internal/notify"
	"github.com/waypost-dev/waypost/internal/service"
	"github.com/waypost-dev/waypost/internal/storage/pg"
	"github.com/waypost-dev/waypost/internal/token"
	"github.com/waypost-dev/waypost/internal/validation"
)

// Dependencies holds all initialized application dependencies.
type Dependencies struct {
	Storage *pg.Storage
	Handler *handler.Handler
	Auth    *middleware.Auth
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	var channel service.Channel
	if cfg.Private.Email != nil {
		channel = notify.NewEmail(cfg.Private.Email)
	}
	notifier := service.NewNotifier(storage, storage, channel, cfg.Public)

	validator := validation.Content{}
	thread := service.NewThread(storage, storage, validator, notifier, cfg.Public)
	reply := service.NewReply(storage, storage, validator, notifier)
	like := service.NewLike(storage)

	tokens := token.New(cfg.Private.JwtKey, cfg.Private.JwtTTL)

	h := handler.New(thread, reply, like, notifier, cfg)

	return &Dependencies{
		Storage: storage,
		Handler: h,
		Auth:    middleware.NewAuth(tokens),
	}, nil
}
