package game

import (
	"time"

	"menagerie/internal/genetics"
)

// Attribute names one of the ten performance stats of a species.
type Attribute string

const (
	Speed        Attribute = "speed"
	Endurance    Attribute = "endurance"
	Agility      Attribute = "agility"
	Strength     Attribute = "strength"
	Intelligence Attribute = "intelligence"
	Obedience    Attribute = "obedience"
	Temperament  Attribute = "temperament"
	Reflexes     Attribute = "reflexes"
	Stamina      Attribute = "stamina"
	Flexibility  Attribute = "flexibility"
	Focus        Attribute = "focus"
	Tracking     Attribute = "tracking"
	Patience     Attribute = "patience"
)

// Stats holds an animal's realized attributes on a 0-100 scale.
type Stats map[Attribute]int

// Clone returns an independent copy.
func (s Stats) Clone() Stats {
	out := make(Stats, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Gender is species specific: stallion/mare for horses, male/female for dogs.
type Gender string

const (
	Stallion Gender = "stallion"
	Mare     Gender = "mare"
	Male     Gender = "male"
	Female   Gender = "female"
)

// Health is the mutable wellbeing block of an animal record.
type Health struct {
	Status    string `json:"status"`
	Energy    int    `json:"energy"`
	Happiness int    `json:"happiness"`
}

// Healthy is the status every new animal starts with.
const Healthy = "healthy"

// BreedingRecord links an animal to its parents and offspring.
type BreedingRecord struct {
	Sire        string     `json:"sire,omitempty"`
	Dam         string     `json:"dam,omitempty"`
	Offspring   []string   `json:"offspring,omitempty"`
	Pregnant    bool       `json:"pregnant,omitempty"`
	Pregnancies int        `json:"pregnancies,omitempty"`
	LastBred    *time.Time `json:"lastBred,omitempty"`
}

// WildTraits are the extra fields captured animals carry.
type WildTraits struct {
	Origin             string    `json:"origin"`
	CapturedAt         time.Time `json:"capturedAt"`
	MaturityStage      string    `json:"maturityStage,omitempty"`
	TemperamentQuality string    `json:"temperamentQuality"`
	BondingPotential   int       `json:"bondingPotential,omitempty"`
	TrainingPotential  string    `json:"trainingPotential,omitempty"`
	COI                int       `json:"coi,omitempty"`
	TamingDifficulty   int       `json:"tamingDifficulty,omitempty"`
	BondingSpeed       int       `json:"bondingSpeed,omitempty"`
	SpecialTitle       string    `json:"specialTitle,omitempty"`
	Affinities         []string  `json:"affinities,omitempty"`
}

// Achievement is appended to an animal after a prize-winning placement.
type Achievement struct {
	Event     string    `json:"event"`
	Placement int       `json:"placement"`
	Date      time.Time `json:"date"`
	Points    int       `json:"points"`
}

// Animal is the persisted record for one horse or dog.
type Animal struct {
	ID           string           `json:"id"`
	Owner        string           `json:"owner"`
	Name         string           `json:"name"`
	Species      genetics.Species `json:"species"`
	Breed        string           `json:"breed"`
	Gender       Gender           `json:"gender"`
	AgeMonths    int              `json:"ageMonths"`
	Height       float64          `json:"height"`
	Weight       float64          `json:"weight,omitempty"`
	Genome       genetics.Genome  `json:"genome"`
	Stats        Stats            `json:"stats"`
	Training     map[string]int   `json:"training"`
	Color        genetics.Color   `json:"color"`
	Rarity       Rarity           `json:"rarity"`
	Health       Health           `json:"health"`
	Breeding     BreedingRecord   `json:"breeding"`
	Wild         *WildTraits      `json:"wild,omitempty"`
	Achievements []Achievement    `json:"achievements,omitempty"`
	Value        int              `json:"value"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// Defects recomputes the hereditary conditions the animal expresses.
func (a *Animal) Defects() ([]string, error) {
	return genetics.CheckDefects(a.Species, a.Genome)
}

// Carriers lists conditions the animal silently carries.
func (a *Animal) Carriers() ([]string, error) {
	return genetics.Carriers(a.Species, a.Genome)
}

// AgeYears is the completed years of age.
func (a *Animal) AgeYears() int {
	return a.AgeMonths / 12
}

func newHealth() Health {
	return Health{Status: Healthy, Energy: 100, Happiness: 100}
}
