package repository

import (
	"coinbot/application"
	"coinbot/database"
	"coinbot/domain/interfaces"
)

// CreateTestUnitOfWork creates a unit of work backed by the postgres offer table
// with the provided transactional publisher
func CreateTestUnitOfWork(db *database.DB, guildID int64, transactionalPublisher interfaces.TransactionalEventPublisher) application.UnitOfWork {
	return NewUnitOfWorkFactory(db, nil).CreateForGuildWithPublisher(guildID, transactionalPublisher)
}
