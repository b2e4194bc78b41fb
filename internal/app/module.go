package app

import (
	"log/slog"
	"os"

	"github.com/peyvandhq/peyvand/internal/identity"
	"github.com/peyvandhq/peyvand/internal/notification"
	"github.com/peyvandhq/peyvand/internal/social"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.identity.enabled") {
		if err := identity.New(identity.Dependency{
			DBConn:      a.dbConn,
			CacheConn:   a.cacheConn,
			Goroutine:   a.goroutine,
			Router:      a.router,
			Idempotency: a.idemp,
			Messaging:   a.messaging,
			Storage:     a.storage,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			UUID:        a.uuid,
			HMAC:        a.hmac,
			OtpCode:     a.otpCode,
			Clock:       a.clock,
			Validator:   a.validator,
			JWT:         a.jwt,
		}); err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.social.enabled") {
		if err := social.New(social.Dependency{
			DBConn:     a.dbConn,
			Goroutine:  a.goroutine,
			Router:     a.router,
			Storage:    a.storage,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module social", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			SMS:        a.smsSender,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
