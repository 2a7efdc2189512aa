// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/go-petr/snapledger/internal/accountdelivery"
	"github.com/go-petr/snapledger/internal/accountrepo"
	"github.com/go-petr/snapledger/internal/accountservice"
	"github.com/go-petr/snapledger/internal/attemptrepo"
	"github.com/go-petr/snapledger/internal/directorydelivery"
	"github.com/go-petr/snapledger/internal/directoryservice"
	"github.com/go-petr/snapledger/internal/entryrepo"
	"github.com/go-petr/snapledger/internal/ledgerdelivery"
	"github.com/go-petr/snapledger/internal/ledgerrepo"
	"github.com/go-petr/snapledger/internal/ledgerservice"
	"github.com/go-petr/snapledger/internal/middleware"
	"github.com/go-petr/snapledger/internal/pindelivery"
	"github.com/go-petr/snapledger/internal/pinservice"
	"github.com/go-petr/snapledger/internal/sessiondelivery"
	"github.com/go-petr/snapledger/internal/sessionrepo"
	"github.com/go-petr/snapledger/internal/sessionservice"
	"github.com/go-petr/snapledger/internal/verificationdelivery"
	"github.com/go-petr/snapledger/internal/verificationrepo"
	"github.com/go-petr/snapledger/internal/verificationservice"
	"github.com/go-petr/snapledger/pkg/configpkg"
	"github.com/go-petr/snapledger/pkg/tokenpkg"
	"github.com/go-petr/snapledger/pkg/validpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB       *sql.DB
	Redis    redis.Cmdable
	Engine   *gin.Engine
	Config   configpkg.Config
	Sessions *sessionservice.Service
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, rdb redis.Cmdable, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	entryRepo := entryrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn, config.TxMaxAttempts)
	sessionRepo := sessionrepo.NewRepoPGS(conn)
	attemptRepo := attemptrepo.NewRepoRedis(rdb, config.PinLockoutDuration)
	verificationRepo := verificationrepo.NewRepoRedis(rdb)

	tokenMaker, err := tokenpkg.NewMaker(config.TokenType, config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	accountService := accountservice.New(accountRepo, config.StartingGrant)
	directoryService := directoryservice.New(accountRepo)
	pinService := pinservice.New(accountRepo, attemptRepo, config.PinMaxAttempts)
	ledgerService := ledgerservice.New(ledgerRepo, accountRepo, entryRepo, directoryService, ledgerservice.Limits{
		Transfer: config.TransferLimit,
		Deposit:  config.DepositLimit,
	})
	verificationService := verificationservice.New(
		verificationRepo, verificationservice.LogSender{}, config.VerificationTTL, config.VerificationCodeLength)

	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	accountHandler := accountdelivery.NewHandler(accountService)
	directoryHandler := directorydelivery.NewHandler(directoryService)
	pinHandler := pindelivery.NewHandler(pinService)
	ledgerHandler := ledgerdelivery.NewHandler(ledgerService, pinService)
	verificationHandler := verificationdelivery.NewHandler(verificationService, sessionService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/verifications", verificationHandler.Start)
	engine.POST("/verifications/:id/complete", verificationHandler.Complete)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)
	engine.POST("/sessions/revoke", sessionHandler.Revoke)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts/me", accountHandler.Get)
	authRoutes.PUT("/accounts/me/username", directoryHandler.Register)
	authRoutes.GET("/directory/:username", directoryHandler.Resolve)

	authRoutes.POST("/pin", pinHandler.SetPin)
	authRoutes.POST("/pin/verify", pinHandler.VerifyPin)
	authRoutes.PUT("/pin", pinHandler.ChangePin)

	authRoutes.POST("/balance", ledgerHandler.GetBalance)
	authRoutes.POST("/history", ledgerHandler.ListHistory)
	authRoutes.POST("/transfers", ledgerHandler.Transfer)
	authRoutes.POST("/deposits", ledgerHandler.Deposit)

	if err := validpkg.RegisterGin(); err != nil {
		return nil, errors.New("cannot register validators")
	}

	server := &Server{
		DB:       conn,
		Redis:    rdb,
		Engine:   engine,
		Config:   config,
		Sessions: sessionService,
	}

	return server, nil
}
