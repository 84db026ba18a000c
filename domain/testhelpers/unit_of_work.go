package testhelpers

import (
	"context"

	"coinbot/application"
	"coinbot/domain/interfaces"
)

// MockUnitOfWork hands out the mocks it holds and records how it was finished
type MockUnitOfWork struct {
	Accounts  *MockAccountRepository
	History   *MockBalanceHistoryRepository
	Rounds    *MockGameRoundRepository
	Offers    *MockOfferStore
	Settings  *MockSettingsRepository
	Publisher *RecordingPublisher

	BeginErr   error
	Committed  bool
	RolledBack bool
}

// NewMockUnitOfWork creates a unit of work over fresh mocks
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		Accounts:  new(MockAccountRepository),
		History:   new(MockBalanceHistoryRepository),
		Rounds:    new(MockGameRoundRepository),
		Offers:    new(MockOfferStore),
		Settings:  new(MockSettingsRepository),
		Publisher: &RecordingPublisher{},
	}
}

func (u *MockUnitOfWork) Begin(ctx context.Context) error { return u.BeginErr }

func (u *MockUnitOfWork) Commit() error {
	u.Committed = true
	return u.Publisher.Flush(context.Background())
}

func (u *MockUnitOfWork) Rollback() error {
	if !u.Committed {
		u.RolledBack = true
		u.Publisher.Discard()
	}
	return nil
}

func (u *MockUnitOfWork) AccountRepository() interfaces.AccountRepository { return u.Accounts }
func (u *MockUnitOfWork) BalanceHistoryRepository() interfaces.BalanceHistoryRepository {
	return u.History
}
func (u *MockUnitOfWork) GameRoundRepository() interfaces.GameRoundRepository { return u.Rounds }
func (u *MockUnitOfWork) OfferStore() interfaces.OfferStore                   { return u.Offers }
func (u *MockUnitOfWork) SettingsRepository() interfaces.SettingsRepository   { return u.Settings }
func (u *MockUnitOfWork) EventBus() interfaces.EventPublisher                 { return u.Publisher }

// MockUnitOfWorkFactory always returns the same unit of work and remembers the scope it was asked for
type MockUnitOfWorkFactory struct {
	UnitOfWork *MockUnitOfWork
	Scopes     []int64
}

func (f *MockUnitOfWorkFactory) CreateForGuild(guildID int64) application.UnitOfWork {
	f.Scopes = append(f.Scopes, guildID)
	return f.UnitOfWork
}
