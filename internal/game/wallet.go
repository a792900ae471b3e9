package game

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"menagerie/internal/genetics"
)

// Cost is a price in coins, gems and consumable items (lassos, leashes).
type Cost struct {
	Coins int            `yaml:"coins,omitempty" json:"coins,omitempty"`
	Gems  int            `yaml:"gems,omitempty" json:"gems,omitempty"`
	Items map[string]int `yaml:"items,omitempty" json:"items,omitempty"`
}

// PaymentMethod selects which part of a Cost the player pays with.
type PaymentMethod string

const (
	PayCoins PaymentMethod = "coins"
	PayGems  PaymentMethod = "gems"
	PayItems PaymentMethod = "items"
)

// Wallet is a player's balances and progression counters.
type Wallet struct {
	ID                string         `json:"id"`
	Owner             string         `json:"owner"`
	Coins             int            `json:"coins"`
	Gems              int            `json:"gems"`
	Items             map[string]int `json:"items"`
	Premium           bool           `json:"premium"`
	Experience        int            `json:"experience"`
	Level             int            `json:"level"`
	ShelterReputation int            `json:"shelterReputation"`
	BreederPoints     int            `json:"breederPoints"`
	Sponsored         []string       `json:"sponsored,omitempty"`
}

// NewWallet returns a level 1 wallet with the given starting balances.
func NewWallet(owner string, coins, gems int, items map[string]int) *Wallet {
	w := &Wallet{Owner: owner, Coins: coins, Gems: gems, Items: map[string]int{}, Level: 1}
	maps.Copy(w.Items, items)
	return w
}

// Pay debits c using the chosen method. Coins and gems are tried only when
// selected and sufficient; anything else falls back to the item cost. The
// wallet is unchanged on failure.
func (w *Wallet) Pay(c Cost, method PaymentMethod) error {
	switch {
	case method == PayCoins && c.Coins > 0 && w.Coins >= c.Coins:
		w.Coins -= c.Coins
		return nil
	case method == PayGems && c.Gems > 0 && w.Gems >= c.Gems:
		w.Gems -= c.Gems
		return nil
	}
	if len(c.Items) == 0 {
		return fmt.Errorf("%w: cannot pay with %s", ErrInsufficientResources, method)
	}
	for item, n := range c.Items {
		if w.Items[item] < n {
			return fmt.Errorf("%w: need %d %s", ErrInsufficientResources, n, item)
		}
	}
	for item, n := range c.Items {
		w.Items[item] -= n
	}
	return nil
}

// PayFee debits a plain coin fee such as an event entry.
func (w *Wallet) PayFee(coins int) error {
	if w.Coins < coins {
		return fmt.Errorf("%w: need %d coins", ErrInsufficientResources, coins)
	}
	w.Coins -= coins
	return nil
}

// Credit adds a reward.
func (w *Wallet) Credit(c Cost) {
	w.Coins += c.Coins
	w.Gems += c.Gems
	if len(c.Items) > 0 && w.Items == nil {
		w.Items = map[string]int{}
	}
	for item, n := range c.Items {
		w.Items[item] += n
	}
}

// AddExperience adds xp and recomputes the level. It reports whether the
// player levelled up.
func (w *Wallet) AddExperience(xp, perLevel int) bool {
	w.Experience += xp
	if perLevel <= 0 {
		return false
	}
	level := w.Experience/perLevel + 1
	if level > w.Level {
		w.Level = level
		return true
	}
	return false
}

// ShelterAction is something a player does for the dog shelter.
type ShelterAction string

const (
	Adopt         ShelterAction = "adopt"
	Sponsor       ShelterAction = "sponsor"
	Donate        ShelterAction = "donate"
	CompleteQuest ShelterAction = "complete_quest"
)

// AdoptionFee prices a shelter animal: the base fee scaled by rarity,
// discounted for disorders and seniors, marked up for titled strays.
func (r ShelterRules) AdoptionFee(a *Animal) (int, error) {
	fee := float64(r.BaseAdoptionFee)
	if m, ok := r.RarityFeeMultipliers[a.Rarity]; ok {
		fee *= m
	}
	defects, err := a.Defects()
	if err != nil {
		return 0, err
	}
	if len(defects) > 0 {
		fee *= r.DisorderDiscount
	}
	if r.senior(a) {
		fee *= r.SeniorDiscount
	}
	if a.Wild != nil && a.Wild.SpecialTitle != "" {
		fee *= r.TitlePremium
	}
	return int(math.Floor(fee)), nil
}

// ReputationGain is the shelter reputation earned by an action. a is the
// adopted animal for Adopt and coins the amount given for Donate.
func (r ShelterRules) ReputationGain(action ShelterAction, a *Animal, coins int) (int, error) {
	rep := r.Reputation
	switch action {
	case Adopt:
		gain := rep.Adopt
		if a == nil {
			return gain, nil
		}
		defects, err := a.Defects()
		if err != nil {
			return 0, err
		}
		if len(defects) > 0 {
			gain += rep.AdoptWithDisorder
		}
		if r.senior(a) {
			gain += rep.AdoptSenior
		}
		return gain, nil
	case Sponsor:
		return rep.Sponsor, nil
	case Donate:
		return coins / 100 * rep.DonatePer100Coins, nil
	case CompleteQuest:
		return rep.CompleteQuest, nil
	}
	return 0, fmt.Errorf("unknown shelter action %q", action)
}

// senior holds for animals strictly older than SeniorAgeYears.
func (r ShelterRules) senior(a *Animal) bool {
	return a.AgeMonths > r.SeniorAgeYears*12
}

// CanSponsorMore reports whether w is a premium member below the
// sponsorship limit.
func (r ShelterRules) CanSponsorMore(w *Wallet) bool {
	return w.Premium && len(w.Sponsored) < r.MaxSponsored
}

// SponsorAnimal records a sponsorship of a shelter dog and credits the
// reputation.
func (r ShelterRules) SponsorAnimal(w *Wallet, a *Animal) error {
	if a.Species != genetics.Dog {
		return fmt.Errorf("%w: only shelter dogs can be sponsored", ErrRequirementsNotMet)
	}
	if !w.Premium {
		return fmt.Errorf("%w: sponsoring", ErrPremiumOnly)
	}
	if slices.Contains(w.Sponsored, a.ID) {
		return fmt.Errorf("%w: already sponsoring %s", ErrRequirementsNotMet, a.ID)
	}
	if !r.CanSponsorMore(w) {
		return fmt.Errorf("%w: sponsorship limit of %d reached", ErrRequirementsNotMet, r.MaxSponsored)
	}
	w.Sponsored = append(w.Sponsored, a.ID)
	w.ShelterReputation += r.Reputation.Sponsor
	return nil
}
