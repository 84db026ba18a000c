package admin

import (
	"context"
	"fmt"

	"coinbot/application"
	"coinbot/bot/common"
	"coinbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const (
	modeOn  = "on"
	modeOff = "off"
)

func (f *Feature) handleGrant(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	inv, err := f.authorize(i)
	if err != nil {
		common.HandleError(s, i, err, "admin grant refused")
		return
	}

	var (
		target *discordgo.User
		amount int64
	)
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		switch opt.Name {
		case "user":
			target = opt.UserValue(s)
		case "amount":
			amount = opt.IntValue()
		}
	}
	if target == nil {
		common.RespondWithError(s, i, "Pick a user to grant coins to.")
		return
	}
	targetID, err := common.ParseUserID(target.ID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "invalid target user ID"), "admin grant failed")
		return
	}

	account, err := f.grant(ctx, inv, targetID, amount)
	if err != nil {
		common.HandleError(s, i, err, "admin grant failed")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Granted %s to %s. New balance: %s",
		common.FormatCoins(amount), common.GetUserMention(targetID), common.FormatCoins(account.Balance)), true)
}

func (f *Feature) handleReset(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	inv, err := f.authorize(i)
	if err != nil {
		common.HandleError(s, i, err, "admin reset refused")
		return
	}

	var (
		target     *discordgo.User
		scopeInput = string(entities.ResetScopeAll)
	)
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		switch opt.Name {
		case "user":
			target = opt.UserValue(s)
		case "scope":
			scopeInput = opt.StringValue()
		}
	}
	if target == nil {
		common.RespondWithError(s, i, "Pick a user to reset.")
		return
	}
	targetID, err := common.ParseUserID(target.ID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "invalid target user ID"), "admin reset failed")
		return
	}

	account, err := f.reset(ctx, inv, targetID, scopeInput)
	if err != nil {
		common.HandleError(s, i, err, "admin reset failed")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Reset %s for %s. Balance: %s",
		scopeInput, common.GetUserMention(targetID), common.FormatCoins(account.Balance)), true)
}

func (f *Feature) handleMode(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	inv, err := f.authorize(i)
	if err != nil {
		common.HandleError(s, i, err, "admin mode refused")
		return
	}

	var state string
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		if opt.Name == "state" {
			state = opt.StringValue()
		}
	}

	if err := f.setMode(ctx, inv, state); err != nil {
		common.HandleError(s, i, err, "admin mode failed")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Admin mode is now **%s**.", state), true)
}

// authorize resolves the caller and checks them against the configured admins
func (f *Feature) authorize(i *discordgo.InteractionCreate) (*common.Invocation, error) {
	inv, err := common.ParseInvocation(i, f.config)
	if err != nil {
		return nil, err
	}
	if !f.config.IsAdmin(inv.UserID) {
		return nil, common.NewUserError("You are not allowed to use admin commands.", fmt.Sprintf("user %d is not an admin", inv.UserID))
	}
	return inv, nil
}

func (f *Feature) grant(ctx context.Context, inv *common.Invocation, targetID, amount int64) (*entities.Account, error) {
	var account *entities.Account
	err := application.WithUnitOfWork(ctx, f.uowFactory, inv.ScopeID, func(uow application.UnitOfWork) error {
		if err := requireAdminMode(ctx, uow); err != nil {
			return err
		}
		var err error
		account, err = common.NewAdminService(uow).Grant(ctx, targetID, amount)
		return err
	})
	return account, err
}

func (f *Feature) reset(ctx context.Context, inv *common.Invocation, targetID int64, scopeInput string) (*entities.Account, error) {
	scope, err := entities.ParseResetScope(scopeInput)
	if err != nil {
		return nil, err
	}

	var account *entities.Account
	err = application.WithUnitOfWork(ctx, f.uowFactory, inv.ScopeID, func(uow application.UnitOfWork) error {
		if err := requireAdminMode(ctx, uow); err != nil {
			return err
		}
		var err error
		account, err = common.NewAdminService(uow).Reset(ctx, targetID, scope)
		return err
	})
	if err == nil {
		log.WithFields(log.Fields{
			"admin":   inv.UserID,
			"target":  targetID,
			"scopeID": inv.ScopeID,
			"reset":   scope,
		}).Info("Admin reset applied")
	}
	return account, err
}

func (f *Feature) setMode(ctx context.Context, inv *common.Invocation, state string) error {
	if state != modeOn && state != modeOff {
		return fmt.Errorf("%w: mode must be %s or %s", entities.ErrInvalidChoice, modeOn, modeOff)
	}
	return application.WithUnitOfWork(ctx, f.uowFactory, inv.ScopeID, func(uow application.UnitOfWork) error {
		if err := uow.SettingsRepository().Set(ctx, entities.SettingAdminMode, state); err != nil {
			return fmt.Errorf("failed to save admin mode: %w", err)
		}
		return nil
	})
}

// requireAdminMode fails unless the scope's admin mode setting is on
func requireAdminMode(ctx context.Context, uow application.UnitOfWork) error {
	value, found, err := uow.SettingsRepository().Get(ctx, entities.SettingAdminMode)
	if err != nil {
		return fmt.Errorf("failed to read admin mode: %w", err)
	}
	if !found || value != modeOn {
		return common.NewUserError("Admin mode is off. Turn it on with `/admin mode on`.", "admin mode is off")
	}
	return nil
}
