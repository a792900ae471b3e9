package game

import (
	"fmt"
	"slices"
	"time"

	"menagerie/internal/genetics"
)

// EventStatus is the lifecycle state of a competition.
type EventStatus string

const (
	StatusUpcoming           EventStatus = "upcoming"
	StatusRegistrationOpen   EventStatus = "registration_open"
	StatusRegistrationClosed EventStatus = "registration_closed"
	StatusInProgress         EventStatus = "in_progress"
	StatusCompleted          EventStatus = "completed"
	StatusCancelled          EventStatus = "cancelled"
)

const defaultMaxParticipants = 50

// Requirements gate registration. Ages are in years; a zero MaxAge means
// no upper limit.
type Requirements struct {
	MinLevel       int      `json:"minLevel"`
	MinAge         int      `json:"minAge"`
	MaxAge         int      `json:"maxAge"`
	AllowedBreeds  []string `json:"allowedBreeds,omitempty"`
	MinTraining    int      `json:"minTraining"`
	HealthRequired bool     `json:"healthRequired"`
}

// Participant is a registered entry.
type Participant struct {
	Owner      string    `json:"owner"`
	Animal     string    `json:"animal"`
	Registered time.Time `json:"registered"`
	Score      float64   `json:"score"`
	Placement  int       `json:"placement"`
}

// Prize is paid to the entry finishing at Placement.
type Prize struct {
	Placement int `yaml:"placement" json:"placement"`
	Cost      `yaml:",inline"`
}

// Event is a competition for one species in one category.
type Event struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Description          string           `json:"description"`
	Species              genetics.Species `json:"species"`
	Category             string           `json:"category"`
	Difficulty           string           `json:"difficulty,omitempty"`
	StartDate            time.Time        `json:"startDate"`
	EndDate              time.Time        `json:"endDate"`
	RegistrationDeadline time.Time        `json:"registrationDeadline"`
	EntryFee             int              `json:"entryFee"`
	MaxParticipants      int              `json:"maxParticipants"`
	Requirements         Requirements     `json:"requirements"`
	Prizes               []Prize          `json:"prizes,omitempty"`
	Participants         []Participant    `json:"participants"`
	Results              []Result         `json:"results,omitempty"`
	Status               EventStatus      `json:"status"`
}

// ValidateEvent checks a new event against the tables and fills defaults.
func (t *Tables) ValidateEvent(ev *Event) error {
	rules, err := t.Rules(ev.Species)
	if err != nil {
		return err
	}
	if _, ok := rules.Categories[ev.Category]; !ok {
		return fmt.Errorf("%w: %q for %s", ErrUnknownCategory, ev.Category, ev.Species)
	}
	if ev.Name == "" {
		return fmt.Errorf("event name is required")
	}
	if ev.EntryFee < 0 {
		return fmt.Errorf("negative entry fee %d", ev.EntryFee)
	}
	if !ev.EndDate.IsZero() && ev.EndDate.Before(ev.StartDate) {
		return fmt.Errorf("event %q ends before it starts", ev.Name)
	}
	if ev.MaxParticipants <= 0 {
		ev.MaxParticipants = defaultMaxParticipants
	}
	if ev.Status == "" {
		ev.Status = StatusUpcoming
	}
	return nil
}

// RegistrationOpen reports whether entries are accepted at now.
func (ev *Event) RegistrationOpen(now time.Time) bool {
	return ev.Status == StatusRegistrationOpen &&
		!now.After(ev.RegistrationDeadline) &&
		len(ev.Participants) < ev.MaxParticipants
}

// MeetsRequirements checks the animal-side requirements.
func (ev *Event) MeetsRequirements(rules *SpeciesRules, a *Animal) bool {
	req := ev.Requirements
	if a.Species != ev.Species {
		return false
	}
	age := a.AgeYears()
	if age < req.MinAge || (req.MaxAge > 0 && age > req.MaxAge) {
		return false
	}
	if len(req.AllowedBreeds) > 0 && !slices.Contains(req.AllowedBreeds, a.Breed) {
		return false
	}
	if req.HealthRequired && a.Health.Status != Healthy {
		return false
	}
	return TrainingLevel(rules, a) >= req.MinTraining
}

// OpenRegistration moves an upcoming event to registration_open.
func (ev *Event) OpenRegistration() error {
	if ev.Status != StatusUpcoming {
		return fmt.Errorf("%w: event is %s", ErrEventNotReady, ev.Status)
	}
	ev.Status = StatusRegistrationOpen
	return nil
}

// CloseRegistration moves an open event to registration_closed.
func (ev *Event) CloseRegistration() error {
	if ev.Status != StatusRegistrationOpen {
		return fmt.Errorf("%w: event is %s", ErrEventNotReady, ev.Status)
	}
	ev.Status = StatusRegistrationClosed
	return nil
}

// Register enters a in ev on behalf of the wallet's owner and debits the
// entry fee. Nothing changes on failure.
func (e *Engine) Register(ev *Event, w *Wallet, a *Animal) error {
	if !ev.RegistrationOpen(e.now()) {
		return ErrRegistrationClosed
	}
	for _, p := range ev.Participants {
		if p.Owner == w.Owner {
			return ErrAlreadyRegistered
		}
	}
	if w.Level < ev.Requirements.MinLevel {
		return fmt.Errorf("%w: level %d required", ErrRequirementsNotMet, ev.Requirements.MinLevel)
	}
	rules, err := e.Tables.Rules(ev.Species)
	if err != nil {
		return err
	}
	if !ev.MeetsRequirements(rules, a) {
		return fmt.Errorf("%w: %s", ErrRequirementsNotMet, a.Name)
	}
	if err := w.PayFee(ev.EntryFee); err != nil {
		return err
	}
	ev.Participants = append(ev.Participants, Participant{
		Owner:      w.Owner,
		Animal:     a.ID,
		Registered: e.now(),
	})
	return nil
}

// Award is a prize owed to a player, with the achievement to record on the
// animal.
type Award struct {
	Owner       string      `json:"owner"`
	Animal      string      `json:"animal"`
	Prize       Cost        `json:"prize"`
	Achievement Achievement `json:"achievement"`
}

// RunEvent scores every participant, ranks them, completes the event and
// returns the prizes to pay. animals maps participant animal IDs to their
// records; achievements are appended to the winners in place.
func (e *Engine) RunEvent(ev *Event, animals map[string]*Animal) ([]Award, error) {
	if ev.Status != StatusRegistrationClosed {
		return nil, fmt.Errorf("%w: event is %s", ErrEventNotReady, ev.Status)
	}
	rules, err := e.Tables.Rules(ev.Species)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(ev.Participants))
	for _, p := range ev.Participants {
		a, ok := animals[p.Animal]
		if !ok {
			return nil, fmt.Errorf("participant animal %s not loaded", p.Animal)
		}
		score, detail, err := ScoreParticipant(e.Source, rules, a, ev.Category)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{
			Owner:  p.Owner,
			Animal: p.Animal,
			Score:  score,
			Detail: detail,
			Marks:  judgeMarks(e.Source),
		})
	}
	RankResults(results)

	byAnimal := make(map[string]Result, len(results))
	for _, r := range results {
		byAnimal[r.Animal] = r
	}
	for i := range ev.Participants {
		if r, ok := byAnimal[ev.Participants[i].Animal]; ok {
			ev.Participants[i].Score = r.Score
			ev.Participants[i].Placement = r.Placement
		}
	}
	ev.Results = results
	ev.Status = StatusCompleted

	now := e.now()
	var awards []Award
	for _, r := range results {
		i := slices.IndexFunc(ev.Prizes, func(p Prize) bool { return p.Placement == r.Placement })
		if i < 0 {
			continue
		}
		prize := ev.Prizes[i]
		ach := Achievement{Event: ev.Name, Placement: r.Placement, Date: now, Points: prize.Coins}
		animals[r.Animal].Achievements = append(animals[r.Animal].Achievements, ach)
		awards = append(awards, Award{Owner: r.Owner, Animal: r.Animal, Prize: prize.Cost, Achievement: ach})
	}
	e.logger().Info("event completed", "event", ev.ID, "category", ev.Category, "participants", len(results), "awards", len(awards))
	return awards, nil
}
