// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	accountsfeature "github.com/dalemusser/tourhub/internal/app/features/accounts"
	coordinationfeature "github.com/dalemusser/tourhub/internal/app/features/coordination"
	guidesfeature "github.com/dalemusser/tourhub/internal/app/features/guides"
	healthfeature "github.com/dalemusser/tourhub/internal/app/features/health"
	loginfeature "github.com/dalemusser/tourhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/tourhub/internal/app/features/logout"
	passwordresetfeature "github.com/dalemusser/tourhub/internal/app/features/passwordreset"
	schedulesfeature "github.com/dalemusser/tourhub/internal/app/features/schedules"
	toursfeature "github.com/dalemusser/tourhub/internal/app/features/tours"
	applicationstore "github.com/dalemusser/tourhub/internal/app/store/applications"
	individualappstore "github.com/dalemusser/tourhub/internal/app/store/individualapps"
	schedulestore "github.com/dalemusser/tourhub/internal/app/store/schedules"
	userstore "github.com/dalemusser/tourhub/internal/app/store/users"
	"github.com/dalemusser/tourhub/internal/app/system/auth"
	"github.com/dalemusser/tourhub/internal/app/system/mailer"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It builds the stores and the mailer,
// wires them into the feature handlers, and registers every route on a
// single flat router: the API is one path space, so features register
// directly on the root instead of mounting subrouters.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	mail, err := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)
	if err != nil {
		logger.Error("mailer init failed", zap.Error(err))
		return nil, err
	}

	users := userstore.New(deps.MongoDatabase)
	applications := applicationstore.New(deps.MongoDatabase)
	individualApps := individualappstore.New(deps.MongoDatabase)
	schedules := schedulestore.New(deps.MongoDatabase)

	r := chi.NewRouter()

	// Global auth middleware: loads the SessionUser into context when the
	// request carries an authenticated session. Handlers that need an
	// identity read it via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	healthfeature.Register(r, healthfeature.NewHandler(pingAdapter{deps.MongoClient}, logger))

	toursfeature.Register(r, toursfeature.NewHandler(applications, individualApps, logger))
	coordinationfeature.Register(r, coordinationfeature.NewHandler(applications, users, mail, appCfg.SiteName, logger))
	guidesfeature.Register(r, guidesfeature.NewHandler(applications, logger))
	schedulesfeature.Register(r, schedulesfeature.NewHandler(schedules, users, logger))
	accountsfeature.Register(r, accountsfeature.NewHandler(users, mail, appCfg.SiteName, logger))

	loginfeature.Register(r, loginfeature.NewHandler(users, sessionMgr, logger))
	logoutfeature.Register(r, logoutfeature.NewHandler(sessionMgr, logger))
	passwordresetfeature.Register(r, passwordresetfeature.NewHandler(
		users, mail, appCfg.SiteName, appCfg.BaseURL, appCfg.ResetTokenExpiry, logger))

	// Static frontend assets, served from ./public at the root.
	r.Handle("/*", fileserver.Handler("/", "public"))

	return r, nil
}

// pingAdapter narrows *mongo.Client to the health feature's Pinger.
type pingAdapter struct {
	client *mongo.Client
}

func (p pingAdapter) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}
