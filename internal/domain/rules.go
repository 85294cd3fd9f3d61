package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RuleSet contains every regulatory constant the engine consults. Defaults
// mirror the published figures; an override file can replace any of them
// (see internal/config).
type RuleSet struct {
	// Ceilings maps each category to its maximum monthly benefit.
	Ceilings map[ApplicantCategory]decimal.Decimal `yaml:"ceilings" json:"ceilings"`

	// GrossCeiling is the general average-gross cutoff applied to every
	// non-bracket category.
	GrossCeiling decimal.Decimal `yaml:"gross_ceiling" json:"gross_ceiling"`

	// WorkerMinimumIncome is the earning-capacity floor for the Worker track.
	WorkerMinimumIncome decimal.Decimal `yaml:"worker_minimum_income" json:"worker_minimum_income"`

	// Brackets is the gross-income step table for the bracket category,
	// ordered by ascending UpTo. Income above the last breakpoint pays nothing.
	Brackets []BenefitBracket `yaml:"brackets" json:"brackets"`

	// StudentFloors maps a student category to the fraction of its ceiling
	// under which adjusted net income grants the full ceiling.
	StudentFloors map[ApplicantCategory]decimal.Decimal `yaml:"student_floors" json:"student_floors"`

	CarValueLimit    decimal.Decimal `yaml:"car_value_limit" json:"car_value_limit"`
	SavingsThreshold decimal.Decimal `yaml:"savings_threshold" json:"savings_threshold"`
	SavingsFactor    decimal.Decimal `yaml:"savings_factor" json:"savings_factor"`
	CreditPoints     decimal.Decimal `yaml:"credit_points" json:"credit_points"`
	ReductionFactor  decimal.Decimal `yaml:"reduction_factor" json:"reduction_factor"`

	// NetEstimateRatio converts gross to net (and back, by division) when a
	// manual entry supplies only one of the two. Encodes the fixed 4.27%
	// statutory-deduction approximation.
	NetEstimateRatio decimal.Decimal `yaml:"net_estimate_ratio" json:"net_estimate_ratio"`

	// Input caps used by the step validator.
	MaxInput   decimal.Decimal `yaml:"max_input" json:"max_input"`
	MaxSavings decimal.Decimal `yaml:"max_savings" json:"max_savings"`

	// MinimumWage is carried for reference parity with the published constants
	// table; no formula reads it.
	MinimumWage decimal.Decimal `yaml:"minimum_wage" json:"minimum_wage"`
}

// BenefitBracket pays Rate × ceiling when adjusted gross income is at most UpTo.
type BenefitBracket struct {
	UpTo decimal.Decimal `yaml:"up_to" json:"up_to"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// DefaultRules returns the rule set with the current published figures.
func DefaultRules() *RuleSet {
	return &RuleSet{
		Ceilings: map[ApplicantCategory]decimal.Decimal{
			MotherOrPregnant32: decimal.NewFromInt(6655),
			Pregnant14:         decimal.NewFromInt(5324),
			Worker:             decimal.NewFromInt(5324),
			Student30Plus:      decimal.NewFromInt(4992),
			StudentUnder30:     decimal.NewFromInt(3328),
			HighSchoolStudent:  decimal.NewFromInt(5324),
			NewImmigrant:       decimal.NewFromInt(5324),
			SoldierSpouse:      decimal.NewFromInt(4992),
		},
		GrossCeiling:        decimal.NewFromInt(6655),
		WorkerMinimumIncome: decimal.NewFromInt(6247),
		Brackets: []BenefitBracket{
			{UpTo: decimal.NewFromInt(6655), Rate: decimal.NewFromInt(1)},
			{UpTo: decimal.NewFromInt(8000), Rate: decimal.NewFromFloat(0.66)},
			{UpTo: decimal.NewFromInt(10000), Rate: decimal.NewFromFloat(0.5)},
			{UpTo: decimal.NewFromInt(11760), Rate: decimal.NewFromFloat(0.33)},
		},
		StudentFloors: map[ApplicantCategory]decimal.Decimal{
			Student30Plus:  decimal.NewFromFloat(0.25),
			StudentUnder30: decimal.NewFromFloat(0.5),
		},
		CarValueLimit:    decimal.NewFromInt(44611),
		SavingsThreshold: decimal.NewFromInt(42000),
		SavingsFactor:    decimal.NewFromInt(150),
		CreditPoints:     decimal.NewFromInt(484),
		ReductionFactor:  decimal.NewFromFloat(0.7),
		NetEstimateRatio: decimal.NewFromFloat(0.9573),
		MaxInput:         decimal.NewFromInt(100000),
		MaxSavings:       decimal.NewFromInt(1000000),
		MinimumWage:      decimal.NewFromFloat(6260.32),
	}
}

// CeilingFor returns the benefit ceiling for a category, zero if unknown.
func (r *RuleSet) CeilingFor(c ApplicantCategory) decimal.Decimal {
	return r.Ceilings[c]
}

// Validate checks internal consistency of the rule set.
func (r *RuleSet) Validate() error {
	for _, c := range AllCategories() {
		ceiling, ok := r.Ceilings[c]
		if !ok {
			return fmt.Errorf("missing ceiling for category %q", c)
		}
		if ceiling.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("ceiling for category %q must be positive, got %s", c, ceiling)
		}
	}
	if len(r.Brackets) == 0 {
		return fmt.Errorf("at least one benefit bracket is required")
	}
	prev := decimal.Zero
	for i, b := range r.Brackets {
		if b.UpTo.LessThanOrEqual(prev) {
			return fmt.Errorf("bracket %d breakpoint %s must exceed previous breakpoint %s", i, b.UpTo, prev)
		}
		if b.Rate.LessThan(decimal.Zero) || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket %d rate %s must be within [0, 1]", i, b.Rate)
		}
		prev = b.UpTo
	}
	for c, floor := range r.StudentFloors {
		if !c.IsStudent() {
			return fmt.Errorf("student floor declared for non-student category %q", c)
		}
		if floor.LessThanOrEqual(decimal.Zero) || floor.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("student floor for %q must be within (0, 1), got %s", c, floor)
		}
	}
	if r.NetEstimateRatio.LessThanOrEqual(decimal.Zero) || r.NetEstimateRatio.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("net estimate ratio must be within (0, 1], got %s", r.NetEstimateRatio)
	}
	if r.SavingsFactor.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("savings factor must be positive, got %s", r.SavingsFactor)
	}
	if r.ReductionFactor.LessThan(decimal.Zero) || r.ReductionFactor.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("reduction factor must be within [0, 1], got %s", r.ReductionFactor)
	}
	if r.GrossCeiling.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("gross ceiling must be positive, got %s", r.GrossCeiling)
	}
	return nil
}
