package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"coinbot/application"
	"coinbot/bot/common"
	"coinbot/cmd"
	"coinbot/config"
	"coinbot/database"
	"coinbot/infrastructure"

	log "github.com/sirupsen/logrus"
)

func main() {
	// Check for migration subcommands
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.Fatal("Migration error: ", err)
		}
		return
	}

	// Check for admin grant subcommand
	if len(os.Args) > 1 && os.Args[1] == "grant" {
		if err := handleGrantCommand(); err != nil {
			log.Fatal("Grant error: ", err)
		}
		return
	}

	// Normal bot operation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	// Run the application
	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error: ", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: coinbot migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}

// handleGrantCommand credits coins from the command line.
// scope is the guild ID of the ledger, or 0 for the global ledger.
func handleGrantCommand() error {
	if len(os.Args) < 5 {
		return fmt.Errorf("usage: coinbot grant <scope> <user> <amount>")
	}
	scopeID, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid scope %q: %w", os.Args[2], err)
	}
	userID, err := strconv.ParseInt(os.Args[3], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user %q: %w", os.Args[3], err)
	}
	amount, err := strconv.ParseInt(os.Args[4], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", os.Args[4], err)
	}

	ctx := context.Background()
	cfg := config.Get()
	config.ConfigureLogging(cfg)

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Events from the CLI are not delivered anywhere
	uowFactory := infrastructure.NewUnitOfWorkFactory(db, nil, infrastructure.NewNoopEventPublisher())

	return application.WithUnitOfWork(ctx, uowFactory, scopeID, func(uow application.UnitOfWork) error {
		account, err := common.NewAdminService(uow).Grant(ctx, userID, amount)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"scope":      scopeID,
			"user":       userID,
			"amount":     amount,
			"newBalance": account.Balance,
		}).Info("Granted coins")
		return nil
	})
}
