package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coinbot/database"
	"coinbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const accountColumns = `discord_id, guild_id, balance, last_grant_date, created_at, updated_at`

// AccountRepository stores balances for one ledger scope
type AccountRepository struct {
	q       queryable
	guildID int64
}

// NewAccountRepository creates an account repository on the pool, scoped to guildID
func NewAccountRepository(db *database.DB, guildID int64) *AccountRepository {
	return &AccountRepository{q: db.Pool, guildID: guildID}
}

// newAccountRepository creates an account repository with a transaction and scope
func newAccountRepository(tx queryable, guildID int64) *AccountRepository {
	return &AccountRepository{
		q:       tx,
		guildID: guildID,
	}
}

func scanAccount(row pgx.Row) (*entities.Account, error) {
	var account entities.Account
	err := row.Scan(
		&account.DiscordID,
		&account.GuildID,
		&account.Balance,
		&account.LastGrantDate,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Get returns the account or nil if the user has none in this scope
func (r *AccountRepository) Get(ctx context.Context, discordID int64) (*entities.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE discord_id = $1 AND guild_id = $2`

	account, err := scanAccount(r.q.QueryRow(ctx, query, discordID, r.guildID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d in guild %d: %w", discordID, r.guildID, err)
	}
	return account, nil
}

// Ensure creates a zero-balance account if none exists and returns the stored row
func (r *AccountRepository) Ensure(ctx context.Context, discordID int64) (*entities.Account, error) {
	insert := `
		INSERT INTO accounts (discord_id, guild_id)
		VALUES ($1, $2)
		ON CONFLICT (discord_id, guild_id) DO NOTHING
	`
	if _, err := r.q.Exec(ctx, insert, discordID, r.guildID); err != nil {
		return nil, fmt.Errorf("failed to ensure account %d in guild %d: %w", discordID, r.guildID, err)
	}

	account, err := r.Get(ctx, discordID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account %d in guild %d missing after insert", discordID, r.guildID)
	}
	return account, nil
}

// Adjust adds delta to the balance in a single conditional statement.
// A debit that would take the balance below zero changes nothing and
// returns ErrInsufficientFunds.
func (r *AccountRepository) Adjust(ctx context.Context, discordID int64, delta int64) (*entities.Account, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $3, updated_at = NOW()
		WHERE discord_id = $1 AND guild_id = $2 AND balance + $3 >= 0
		RETURNING ` + accountColumns

	account, err := scanAccount(r.q.QueryRow(ctx, query, discordID, r.guildID, delta))
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to adjust balance for %d in guild %d: %w", discordID, r.guildID, err)
	}

	existing, err := r.Get(ctx, discordID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, entities.ErrNoAccount
	}
	return nil, fmt.Errorf("%w: have %d, need %d", entities.ErrInsufficientFunds, existing.Balance, -delta)
}

// SetGrantDate records day as the last grant date unless it is already set to day.
// It reports whether the date was written.
func (r *AccountRepository) SetGrantDate(ctx context.Context, discordID int64, day time.Time) (bool, error) {
	query := `
		UPDATE accounts
		SET last_grant_date = $3::date, updated_at = NOW()
		WHERE discord_id = $1 AND guild_id = $2
		  AND (last_grant_date IS NULL OR last_grant_date <> $3::date)
	`
	result, err := r.q.Exec(ctx, query, discordID, r.guildID, day.Format(time.DateOnly))
	if err != nil {
		return false, fmt.Errorf("failed to set grant date for %d in guild %d: %w", discordID, r.guildID, err)
	}
	return result.RowsAffected() > 0, nil
}

// TopBalances returns up to limit accounts with a positive balance, richest first
func (r *AccountRepository) TopBalances(ctx context.Context, limit int) ([]*entities.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE guild_id = $1 AND balance > 0
		ORDER BY balance DESC, discord_id
		LIMIT $2
	`
	return r.queryAccounts(ctx, query, r.guildID, limit)
}

// TopBalancesAmong is TopBalances restricted to the given users
func (r *AccountRepository) TopBalancesAmong(ctx context.Context, discordIDs []int64, limit int) ([]*entities.Account, error) {
	if len(discordIDs) == 0 {
		return []*entities.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE guild_id = $1 AND balance > 0 AND discord_id = ANY($2)
		ORDER BY balance DESC, discord_id
		LIMIT $3
	`
	return r.queryAccounts(ctx, query, r.guildID, discordIDs, limit)
}

func (r *AccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]*entities.Account, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts in guild %d: %w", r.guildID, err)
	}
	defer rows.Close()

	accounts := []*entities.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}

// ResetBalance sets the user's balance to zero and returns what it was before
func (r *AccountRepository) ResetBalance(ctx context.Context, discordID int64) (int64, error) {
	query := `
		WITH prev AS (
			SELECT balance FROM accounts
			WHERE discord_id = $1 AND guild_id = $2
			FOR UPDATE
		)
		UPDATE accounts
		SET balance = 0, updated_at = NOW()
		FROM prev
		WHERE accounts.discord_id = $1 AND accounts.guild_id = $2
		RETURNING prev.balance
	`
	var previous int64
	err := r.q.QueryRow(ctx, query, discordID, r.guildID).Scan(&previous)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, entities.ErrNoAccount
	}
	if err != nil {
		return 0, fmt.Errorf("failed to reset balance for %d in guild %d: %w", discordID, r.guildID, err)
	}
	return previous, nil
}

// ClearGrantDate lets the user claim the daily grant again
func (r *AccountRepository) ClearGrantDate(ctx context.Context, discordID int64) error {
	result, err := r.q.Exec(ctx,
		`UPDATE accounts SET last_grant_date = NULL, updated_at = NOW() WHERE discord_id = $1 AND guild_id = $2`,
		discordID, r.guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear grant date for %d in guild %d: %w", discordID, r.guildID, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrNoAccount
	}
	return nil
}
