package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jrsteele09/go-login-service/authflow"
	"github.com/jrsteele09/go-login-service/idp"
	"github.com/jrsteele09/go-login-service/internal/config"
	"github.com/jrsteele09/go-login-service/server"
	sessionstore "github.com/jrsteele09/go-login-service/sessions/repopostgres"
	"github.com/jrsteele09/go-login-service/users"
	userstore "github.com/jrsteele09/go-login-service/users/repopostgres"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	if c.GetDatabaseURL() == "" {
		return fmt.Errorf("configuration: %w: DATABASE_URL is not defined in the environment", config.ErrMissingParameter)
	}
	displayAppname(c.GetAppName())

	pool, err := pgxpool.New(context.Background(), c.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	flow := authflow.NewService(
		sessionstore.NewSessionRepo(pool),
		users.NewResolver(userstore.NewUserRepo(pool)),
		idp.New(c),
	)

	server := &http.Server{Addr: c.GetPort(), Handler: server.New(c, flow)}
	go listenAndServe(server)
	waitForStopSignal()
	returnError = shutdown(server)
	return returnError
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
