package engine

import "errors"

// Validation errors returned by Game operations. Failed operations leave
// the state unchanged.
var (
	ErrUnknownRegion        = errors.New("unknown region")
	ErrSameRegion           = errors.New("already in that region")
	ErrGameOver             = errors.New("game over")
	ErrUnknownSkill         = errors.New("unknown skill")
	ErrSkillUnlocked        = errors.New("skill already unlocked")
	ErrNoSkillPoints        = errors.New("not enough skill points")
	ErrUnknownUpgrade       = errors.New("unknown upgrade")
	ErrUpgradeOwned         = errors.New("upgrade already owned")
	ErrNoSetup              = errors.New("no deal on offer")
	ErrNoOpportunity        = errors.New("no opportunity pending")
	ErrNoPoliceStop         = errors.New("no police stop pending")
	ErrPoliceStopPending    = errors.New("deal with the police first")
	ErrInformantUnavailable = errors.New("informant is lying low")
	ErrLaunderingPending    = errors.New("a laundering transfer is already in progress")
	ErrUnknownCoin          = errors.New("unknown coin")
	ErrUnknownTip           = errors.New("unknown tip kind")
	ErrInvalidChoice        = errors.New("invalid choice")
	ErrSkillRequired        = errors.New("skill required")
)
