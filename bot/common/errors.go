package common

import (
	"errors"
	"fmt"

	"coinbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string // Message shown to Discord user
	LogMessage  string // Internal message for logging
	Ephemeral   bool   // Whether the error message should be ephemeral
	Err         error  // Underlying error
	Context     any    // Additional context for logging
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// NewUserError creates an error for user-caused issues (validation, insufficient funds, etc)
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
		Ephemeral:   true,
	}
}

// NewSystemError creates an error for system issues (database, unexpected state, etc)
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: "Something went wrong. Please try again later.",
		LogMessage:  logMessage,
		Ephemeral:   true,
		Err:         err,
	}
}

// domainMessages maps each domain error kind to its own message.
// Order matters: a stake above the balance wraps both ErrInvalidStake and
// ErrInsufficientFunds and should read as the latter.
var domainMessages = []struct {
	kind    error
	message string
}{
	{entities.ErrNoAccount, "You don't have an account yet. Start with `/daily`."},
	{entities.ErrAlreadyClaimedToday, "You already claimed today's coins. Come back after the daily reset."},
	{entities.ErrInsufficientFunds, "You don't have enough coins for that."},
	{entities.ErrInvalidStake, "That stake isn't valid for this game."},
	{entities.ErrInvalidAmount, "Amount must be a positive number of coins."},
	{entities.ErrSelfTransfer, "You cannot send coins to yourself."},
	{entities.ErrNotOwner, "This game belongs to someone else."},
	{entities.ErrAlreadyResolved, "This game is already over."},
	{entities.ErrInvalidChoice, "That choice isn't valid."},
	{entities.ErrUnknownResetScope, "Reset scope must be balance, grant or all."},
}

// DomainErrorMessage returns the user message for a domain error kind.
// ok is false for anything else, which callers treat as a system failure.
func DomainErrorMessage(err error) (message string, ok bool) {
	for _, m := range domainMessages {
		if errors.Is(err, m.kind) {
			return m.message, true
		}
	}
	return "", false
}

// ToBotError classifies a service error as a user or system error
func ToBotError(err error, logMessage string) *BotError {
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr
	}
	if message, ok := DomainErrorMessage(err); ok {
		userErr := NewUserError(message, logMessage)
		userErr.Err = err
		return userErr
	}
	return NewSystemError(err, logMessage)
}

// RespondWithError sends an error message as an interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// HandleError logs err and answers the interaction with the matching message
func HandleError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, logMessage string) {
	botErr := ToBotError(err, logMessage)

	fields := log.Fields{
		"user_id":      InvokerID(i),
		"interaction":  InteractionName(i),
		"error":        botErr.Error(),
		"user_message": botErr.UserMessage,
	}
	if botErr.Context != nil {
		fields["context"] = botErr.Context
	}
	if botErr.Err != nil && !isUserError(botErr) {
		log.WithFields(fields).Error(botErr.LogMessage)
	} else {
		log.WithFields(fields).Info(botErr.LogMessage)
	}

	RespondWithError(s, i, botErr.UserMessage)
}

func isUserError(e *BotError) bool {
	_, ok := DomainErrorMessage(e.Err)
	return ok
}
