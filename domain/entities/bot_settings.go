package entities

// Setting keys persisted in bot_settings
const (
	SettingAdminMode = "admin_mode"
)

// ResetScope selects what an admin reset clears
type ResetScope string

const (
	ResetScopeBalance ResetScope = "balance"
	ResetScopeGrant   ResetScope = "grant"
	ResetScopeAll     ResetScope = "all"
)

// ParseResetScope validates an admin reset scope
func ParseResetScope(s string) (ResetScope, error) {
	switch ResetScope(s) {
	case ResetScopeBalance, ResetScopeGrant, ResetScopeAll:
		return ResetScope(s), nil
	}
	return "", ErrUnknownResetScope
}
