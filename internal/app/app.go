package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peyvandhq/peyvand/internal/pkg/clock"
	"github.com/peyvandhq/peyvand/internal/pkg/config"
	"github.com/peyvandhq/peyvand/internal/pkg/goroutine"
	"github.com/peyvandhq/peyvand/internal/pkg/hash"
	"github.com/peyvandhq/peyvand/internal/pkg/idempotency"
	"github.com/peyvandhq/peyvand/internal/pkg/instrument"
	"github.com/peyvandhq/peyvand/internal/pkg/jwt"
	"github.com/peyvandhq/peyvand/internal/pkg/messaging"
	"github.com/peyvandhq/peyvand/internal/pkg/otpcode"
	"github.com/peyvandhq/peyvand/internal/pkg/router"
	"github.com/peyvandhq/peyvand/internal/pkg/sms"
	"github.com/peyvandhq/peyvand/internal/pkg/storage"
	"github.com/peyvandhq/peyvand/internal/pkg/uid"
	"github.com/peyvandhq/peyvand/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	otpCode   otpcode.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	messaging messaging.Messaging
	storage   storage.Storage
	smsSender sms.Sender

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initStorage()
	app.initMessaging()
	app.initSMS()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
