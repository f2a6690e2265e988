package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step actions a scenario can contain.
const (
	ActionBorrow  = "borrow"
	ActionReturn  = "return"
	ActionSuggest = "suggest"
	ActionReport  = "report"
)

// ErrInvalidScenario is returned when a scenario document can't be parsed or misses required values.
var ErrInvalidScenario = errors.New("invalid scenario")

//go:embed default_scenario.yaml
var defaultScenarioYAML []byte

// Marshalled is implemented by every XxxMarshall type of this file.
type Marshalled[S any] interface {
	trySeal(path string) S
}

// TrySeal seals a marshalled object.
//
// This function CAN PANIC if a required value is missing. Use SealScenario to get an error instead.
func TrySeal[S any](conf Marshalled[S]) S {
	return conf.trySeal("(root)")
}

// ScenarioMarshall is the YAML form of a Scenario.
type ScenarioMarshall struct {
	Capacities *CapacitiesMarshall `yaml:"capacities"`
	Books      []*BookMarshall     `yaml:"books"`
	Patrons    []*PatronMarshall   `yaml:"patrons"`
	Steps      []*StepMarshall     `yaml:"steps"`
}

func (sm *ScenarioMarshall) trySeal(path string) *Scenario {
	capacities := nonnil(sm.Capacities, path+".capacities").trySeal(path + ".capacities")

	books := make([]BookEntry, 0, len(sm.Books))
	for i, b := range sm.Books {
		p := fmt.Sprintf("%s.books[%d]", path, i)
		books = append(books, nonnil(b, p).trySeal(p))
	}

	patrons := make([]PatronEntry, 0, len(sm.Patrons))
	for i, pm := range sm.Patrons {
		p := fmt.Sprintf("%s.patrons[%d]", path, i)
		patrons = append(patrons, nonnil(pm, p).trySeal(p))
	}

	steps := make([]Step, 0, len(sm.Steps))
	for i, st := range sm.Steps {
		p := fmt.Sprintf("%s.steps[%d]", path, i)
		steps = append(steps, nonnil(st, p).trySeal(p))
	}

	return &Scenario{
		capacities: capacities,
		books:      books,
		patrons:    patrons,
		steps:      steps,
	}
}

// Scenario is a sealed, validated scenario.
type Scenario struct {
	capacities Capacities
	books      []BookEntry
	patrons    []PatronEntry
	steps      []Step
}

func (s *Scenario) Capacities() Capacities {
	return s.capacities
}

func (s *Scenario) Books() []BookEntry {
	return s.books
}

func (s *Scenario) Patrons() []PatronEntry {
	return s.patrons
}

func (s *Scenario) Steps() []Step {
	return s.steps
}

type CapacitiesMarshall struct {
	MaxBooks         int `yaml:"maxBooks"`
	MaxBorrowedBooks int `yaml:"maxBorrowedBooks"`
	MaxPatrons       int `yaml:"maxPatrons"`
}

func (cm *CapacitiesMarshall) trySeal(path string) Capacities {
	return Capacities{
		MaxBooks:         positive(cm.MaxBooks, path+".maxBooks"),
		MaxBorrowedBooks: positive(cm.MaxBorrowedBooks, path+".maxBorrowedBooks"),
		MaxPatrons:       positive(cm.MaxPatrons, path+".maxPatrons"),
	}
}

// Capacities are the three fixed limits of a library.
type Capacities struct {
	MaxBooks         int
	MaxBorrowedBooks int
	MaxPatrons       int
}

type BookMarshall struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Year        *int   `yaml:"year"`
	Comic       *int   `yaml:"comic"`
	Dramatic    *int   `yaml:"dramatic"`
	Educational *int   `yaml:"educational"`
}

func (bm *BookMarshall) trySeal(path string) BookEntry {
	return BookEntry{
		Title:       required(bm.Title, path+".title"),
		Author:      required(bm.Author, path+".author"),
		Year:        *nonnil(bm.Year, path+".year"),
		Comic:       *nonnil(bm.Comic, path+".comic"),
		Dramatic:    *nonnil(bm.Dramatic, path+".dramatic"),
		Educational: *nonnil(bm.Educational, path+".educational"),
	}
}

// BookEntry describes one book to add.
type BookEntry struct {
	Title       string
	Author      string
	Year        int
	Comic       int
	Dramatic    int
	Educational int
}

type PatronMarshall struct {
	FirstName   string `yaml:"firstName"`
	LastName    string `yaml:"lastName"`
	Comic       *int   `yaml:"comic"`
	Dramatic    *int   `yaml:"dramatic"`
	Educational *int   `yaml:"educational"`
	Threshold   *int   `yaml:"threshold"`
}

func (pm *PatronMarshall) trySeal(path string) PatronEntry {
	return PatronEntry{
		FirstName:   required(pm.FirstName, path+".firstName"),
		LastName:    required(pm.LastName, path+".lastName"),
		Comic:       *nonnil(pm.Comic, path+".comic"),
		Dramatic:    *nonnil(pm.Dramatic, path+".dramatic"),
		Educational: *nonnil(pm.Educational, path+".educational"),
		Threshold:   *nonnil(pm.Threshold, path+".threshold"),
	}
}

// PatronEntry describes one patron to register.
type PatronEntry struct {
	FirstName   string
	LastName    string
	Comic       int
	Dramatic    int
	Educational int
	Threshold   int
}

// StepMarshall is one scenario step. Ids may be out of range on purpose, so they are only checked for presence.
type StepMarshall struct {
	Action string `yaml:"action"`
	Book   *int   `yaml:"book"`
	Patron *int   `yaml:"patron"`
}

func (sm *StepMarshall) trySeal(path string) Step {
	action := required(sm.Action, path+".action")

	switch action {
	case ActionBorrow:
		return Step{
			Action:   action,
			BookID:   *nonnil(sm.Book, path+".book"),
			PatronID: *nonnil(sm.Patron, path+".patron"),
		}
	case ActionReturn:
		return Step{Action: action, BookID: *nonnil(sm.Book, path+".book")}
	case ActionSuggest:
		return Step{Action: action, PatronID: *nonnil(sm.Patron, path+".patron")}
	case ActionReport:
		return Step{Action: action}
	default:
		panic(fmt.Sprintf(
			"%s.action must be one of %s, %s, %s, %s (got %q)",
			path, ActionBorrow, ActionReturn, ActionSuggest, ActionReport, action,
		))
	}
}

// Step is one sealed scenario step. Ids the action does not use are zero.
type Step struct {
	Action   string
	BookID   int
	PatronID int
}

// SealScenario seals a ScenarioMarshall and turns a missing or malformed value into an error.
func SealScenario(sm *ScenarioMarshall) (scenario *Scenario, err error) {
	defer func() {
		if r := recover(); r != nil {
			scenario = nil
			err = fmt.Errorf("%w: %v", ErrInvalidScenario, r)
		}
	}()

	if sm == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidScenario)
	}

	return TrySeal[*Scenario](sm), nil
}

// UnmarshalScenario parses and seals a YAML scenario document.
func UnmarshalScenario(b []byte) (*Scenario, error) {
	sm := new(ScenarioMarshall)
	if err := yaml.Unmarshal(b, sm); err != nil {
		return nil, errors.Join(ErrInvalidScenario, err)
	}

	return SealScenario(sm)
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(filepath string) (*Scenario, error) {
	b, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	return UnmarshalScenario(b)
}

// DefaultScenario returns the built-in scenario.
func DefaultScenario() (*Scenario, error) {
	return UnmarshalScenario(defaultScenarioYAML)
}

func nonnil[T any](v *T, path string) *T {
	if v == nil {
		panic(path + " is required")
	}
	return v
}

func required[T comparable](v T, path string) T {
	if v == *new(T) {
		panic(path + " is required")
	}
	return v
}

func positive(v int, path string) int {
	if v <= 0 {
		panic(fmt.Sprintf("%s must be positive (got %d)", path, v))
	}
	return v
}
