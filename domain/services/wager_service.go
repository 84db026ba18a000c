package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coinbot/domain/entities"
	"coinbot/domain/events"
	"coinbot/domain/games"
	"coinbot/domain/interfaces"
	"coinbot/domain/utils"

	log "github.com/sirupsen/logrus"
)

// DefaultOfferTTL is how long a three-card offer stays claimable
const DefaultOfferTTL = 15 * time.Minute

type wagerService struct {
	accountRepo        interfaces.AccountRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	gameRoundRepo      interfaces.GameRoundRepository
	offers             interfaces.OfferStore
	eventPublisher     interfaces.EventPublisher
	rng                games.RNG
	newOfferID         func() string
	offerTTL           time.Duration
}

// NewWagerService creates a new wager service.
// newOfferID must return unique tokens; offerTTL <= 0 selects DefaultOfferTTL.
func NewWagerService(
	accountRepo interfaces.AccountRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
	gameRoundRepo interfaces.GameRoundRepository,
	offers interfaces.OfferStore,
	eventPublisher interfaces.EventPublisher,
	rng games.RNG,
	newOfferID func() string,
	offerTTL time.Duration,
) interfaces.WagerService {
	if offerTTL <= 0 {
		offerTTL = DefaultOfferTTL
	}
	return &wagerService{
		accountRepo:        accountRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		gameRoundRepo:      gameRoundRepo,
		offers:             offers,
		eventPublisher:     eventPublisher,
		rng:                rng,
		newOfferID:         newOfferID,
		offerTTL:           offerTTL,
	}
}

func (s *wagerService) PlayCoinFlip(ctx context.Context, discordID int64, call games.CoinSide, stake games.Stake) (*interfaces.CoinFlipResult, error) {
	if call != games.Heads && call != games.Tails {
		return nil, fmt.Errorf("%w: call must be heads or tails", entities.ErrInvalidChoice)
	}

	amount, err := s.resolveStake(ctx, discordID, stake, games.CoinFlipMinStake)
	if err != nil {
		return nil, err
	}

	flip := games.FlipCoin(s.rng, call, amount)
	settled, err := s.settle(ctx, discordID, flip.Outcome)
	if err != nil {
		return nil, err
	}

	return &interfaces.CoinFlipResult{
		GameResult: *settled,
		Call:       flip.Call,
		Landed:     flip.Landed,
	}, nil
}

func (s *wagerService) PlayLottery(ctx context.Context, discordID int64, stake games.Stake) (*interfaces.LotteryResult, error) {
	amount, err := s.resolveStake(ctx, discordID, stake, games.LotteryMinStake)
	if err != nil {
		return nil, err
	}

	spin := games.SpinLottery(s.rng, amount)
	settled, err := s.settle(ctx, discordID, spin.Outcome)
	if err != nil {
		return nil, err
	}

	return &interfaces.LotteryResult{
		GameResult: *settled,
		Symbol:     spin.Symbol,
	}, nil
}

func (s *wagerService) OfferThreeCard(ctx context.Context, discordID int64, stake games.Stake) (*entities.PendingWager, error) {
	account, err := s.accountRepo.Get(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, entities.ErrNoAccount
	}

	amount, err := stake.Resolve(account.Balance, games.ThreeCardMinStake)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	offer := &entities.PendingWager{
		OfferID:     s.newOfferID(),
		DiscordID:   discordID,
		GuildID:     account.GuildID,
		Stake:       amount,
		WinningSlot: games.DealThreeCard(s.rng),
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.offerTTL),
	}
	if err := s.offers.Save(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to save three-card offer: %w", err)
	}

	if err := s.eventPublisher.Publish(events.ThreeCardOfferedEvent{
		OfferID: offer.OfferID,
		UserID:  discordID,
		GuildID: offer.GuildID,
		Stake:   amount,
	}); err != nil {
		log.WithError(err).Error("Failed to publish three-card offer event")
	}

	return offer, nil
}

func (s *wagerService) ResolveThreeCard(ctx context.Context, offerID string, chosenSlot int, callerID int64) (*interfaces.ThreeCardResolution, error) {
	if !games.ValidSlot(chosenSlot) {
		return nil, fmt.Errorf("%w: slot %d", entities.ErrInvalidChoice, chosenSlot)
	}

	// Claiming is the single atomic state transition of the offer; losers of a
	// double-click race get ErrAlreadyResolved and touch nothing
	offer, err := s.offers.Claim(ctx, offerID, callerID)
	if err != nil {
		if errors.Is(err, entities.ErrNotOwner) || errors.Is(err, entities.ErrAlreadyResolved) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to claim offer %s: %w", offerID, err)
	}

	pick, err := games.ThreeCardPayout(offer.WinningSlot, chosenSlot, offer.Stake)
	if err != nil {
		return nil, err
	}

	settled, err := s.settle(ctx, callerID, pick.Outcome)
	if err != nil {
		if !errors.Is(err, entities.ErrInsufficientFunds) && !errors.Is(err, entities.ErrNoAccount) {
			return nil, err
		}
		return s.forfeit(ctx, offer, chosenSlot, pick.Outcome)
	}

	status := interfaces.ThreeCardLost
	if pick.Won {
		status = interfaces.ThreeCardWon
	}
	return &interfaces.ThreeCardResolution{
		Status:     status,
		Offer:      offer,
		ChosenSlot: chosenSlot,
		Outcome:    pick.Outcome,
		NewBalance: settled.NewBalance,
	}, nil
}

// forfeit closes an offer whose bettor can no longer cover the stake. The offer
// stays consumed and the balance is left as it is.
func (s *wagerService) forfeit(ctx context.Context, offer *entities.PendingWager, chosenSlot int, outcome games.Outcome) (*interfaces.ThreeCardResolution, error) {
	var balance int64
	account, err := s.accountRepo.Get(ctx, offer.DiscordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account != nil {
		balance = account.Balance
	}

	log.WithFields(log.Fields{
		"offerID":   offer.OfferID,
		"discordID": offer.DiscordID,
		"stake":     offer.Stake,
		"balance":   balance,
	}).Info("Three-card offer forfeited: stake no longer covered")

	if err := s.eventPublisher.Publish(events.ThreeCardForfeitedEvent{
		OfferID: offer.OfferID,
		UserID:  offer.DiscordID,
		GuildID: offer.GuildID,
		Stake:   offer.Stake,
	}); err != nil {
		log.WithError(err).Error("Failed to publish three-card forfeit event")
	}

	return &interfaces.ThreeCardResolution{
		Status:     interfaces.ThreeCardInsufficientFunds,
		Offer:      offer,
		ChosenSlot: chosenSlot,
		Outcome:    outcome,
		NewBalance: balance,
	}, nil
}

// resolveStake checks the requested stake against the caller's current balance
func (s *wagerService) resolveStake(ctx context.Context, discordID int64, stake games.Stake, minimum int64) (int64, error) {
	account, err := s.accountRepo.Get(ctx, discordID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return 0, entities.ErrNoAccount
	}
	return stake.Resolve(account.Balance, minimum)
}

// settle applies a round to the ledger: a conditional debit of the stake, then a
// credit of the gross payout. Both run inside the caller's unit of work.
func (s *wagerService) settle(ctx context.Context, discordID int64, outcome games.Outcome) (*interfaces.GameResult, error) {
	debited, err := s.accountRepo.Adjust(ctx, discordID, -outcome.Stake)
	if err != nil {
		if errors.Is(err, entities.ErrInsufficientFunds) || errors.Is(err, entities.ErrNoAccount) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to debit stake: %w", err)
	}
	balanceBefore := debited.Balance + outcome.Stake

	final := debited
	if payout := outcome.Payout(); payout > 0 {
		final, err = s.accountRepo.Adjust(ctx, discordID, payout)
		if err != nil {
			return nil, fmt.Errorf("failed to credit payout: %w", err)
		}
	}

	round := &entities.GameRound{
		DiscordID:  discordID,
		GuildID:    final.GuildID,
		Game:       outcome.Game,
		Stake:      outcome.Stake,
		Outcome:    outcome.Result,
		Multiplier: outcome.Multiplier,
		Payout:     outcome.Payout(),
		NetChange:  outcome.NetChange(),
		Won:        outcome.Won,
	}
	if err := s.gameRoundRepo.Create(ctx, round); err != nil {
		return nil, fmt.Errorf("failed to record game round: %w", err)
	}

	transactionType := outcome.Game.LossTransactionType()
	if outcome.Won {
		transactionType = outcome.Game.WinTransactionType()
	}
	relatedType := entities.RelatedTypeGameRound
	history := &entities.BalanceHistory{
		DiscordID:       discordID,
		GuildID:         final.GuildID,
		BalanceBefore:   balanceBefore,
		BalanceAfter:    final.Balance,
		ChangeAmount:    outcome.NetChange(),
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"game":       string(outcome.Game),
			"stake":      outcome.Stake,
			"outcome":    outcome.Result,
			"multiplier": outcome.Multiplier,
		},
		RelatedID:   &round.ID,
		RelatedType: &relatedType,
	}
	if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
		return nil, fmt.Errorf("failed to record balance change: %w", err)
	}

	if err := s.eventPublisher.Publish(events.GameSettledEvent{
		UserID:     discordID,
		GuildID:    final.GuildID,
		Game:       outcome.Game,
		Stake:      outcome.Stake,
		Outcome:    outcome.Result,
		Multiplier: outcome.Multiplier,
		NetChange:  outcome.NetChange(),
		Won:        outcome.Won,
	}); err != nil {
		log.WithError(err).Error("Failed to publish game settled event")
	}

	log.WithFields(log.Fields{
		"discordID":  discordID,
		"game":       outcome.Game,
		"stake":      outcome.Stake,
		"outcome":    outcome.Result,
		"netChange":  outcome.NetChange(),
		"newBalance": final.Balance,
	}).Debug("Game settled")

	return &interfaces.GameResult{
		Outcome:       outcome,
		BalanceBefore: balanceBefore,
		NewBalance:    final.Balance,
	}, nil
}
