// Package config loads rule-set overrides and application input from YAML
// files, and server settings from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ch8101040/tashmash/internal/domain"
)

// rulesFile is the on-disk shape of a rule override. Every field is
// optional; absent fields keep their built-in values. Plain floats keep the
// file format independent of the engine's decimal representation.
type rulesFile struct {
	Ceilings            map[string]float64 `yaml:"ceilings"`
	GrossCeiling        *float64           `yaml:"gross_ceiling"`
	WorkerMinimumIncome *float64           `yaml:"worker_minimum_income"`
	Brackets            []bracketFile      `yaml:"brackets"`
	StudentFloors       map[string]float64 `yaml:"student_floors"`
	CarValueLimit       *float64           `yaml:"car_value_limit"`
	SavingsThreshold    *float64           `yaml:"savings_threshold"`
	SavingsFactor       *float64           `yaml:"savings_factor"`
	CreditPoints        *float64           `yaml:"credit_points"`
	ReductionFactor     *float64           `yaml:"reduction_factor"`
	NetEstimateRatio    *float64           `yaml:"net_estimate_ratio"`
	MaxInput            *float64           `yaml:"max_input"`
	MaxSavings          *float64           `yaml:"max_savings"`
	MinimumWage         *float64           `yaml:"minimum_wage"`
}

type bracketFile struct {
	UpTo float64 `yaml:"up_to"`
	Rate float64 `yaml:"rate"`
}

// LoadRules returns the built-in rule set, overlaid with the YAML file at
// path when one is given. An override file only needs to name what changes.
func LoadRules(path string) (*domain.RuleSet, error) {
	rules := domain.DefaultRules()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
		}
		var file rulesFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
		}
		applyOverrides(rules, &file)
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return rules, nil
}

func applyOverrides(rules *domain.RuleSet, file *rulesFile) {
	for id, v := range file.Ceilings {
		rules.Ceilings[domain.ApplicantCategory(id)] = decimal.NewFromFloat(v)
	}
	for id, v := range file.StudentFloors {
		rules.StudentFloors[domain.ApplicantCategory(id)] = decimal.NewFromFloat(v)
	}
	if len(file.Brackets) > 0 {
		rules.Brackets = make([]domain.BenefitBracket, 0, len(file.Brackets))
		for _, b := range file.Brackets {
			rules.Brackets = append(rules.Brackets, domain.BenefitBracket{
				UpTo: decimal.NewFromFloat(b.UpTo),
				Rate: decimal.NewFromFloat(b.Rate),
			})
		}
	}
	setDecimal(&rules.GrossCeiling, file.GrossCeiling)
	setDecimal(&rules.WorkerMinimumIncome, file.WorkerMinimumIncome)
	setDecimal(&rules.CarValueLimit, file.CarValueLimit)
	setDecimal(&rules.SavingsThreshold, file.SavingsThreshold)
	setDecimal(&rules.SavingsFactor, file.SavingsFactor)
	setDecimal(&rules.CreditPoints, file.CreditPoints)
	setDecimal(&rules.ReductionFactor, file.ReductionFactor)
	setDecimal(&rules.NetEstimateRatio, file.NetEstimateRatio)
	setDecimal(&rules.MaxInput, file.MaxInput)
	setDecimal(&rules.MaxSavings, file.MaxSavings)
	setDecimal(&rules.MinimumWage, file.MinimumWage)
}

func setDecimal(dst *decimal.Decimal, src *float64) {
	if src != nil {
		*dst = decimal.NewFromFloat(*src)
	}
}

// applicationFile is the on-disk shape of a saved application for the
// non-interactive commands.
type applicationFile struct {
	Category     string     `yaml:"category"`
	IncomeMethod string     `yaml:"income_method"`
	SalarySlips  []slipFile `yaml:"salary_slips"`
	ManualIncome struct {
		Gross *float64 `yaml:"gross"`
		Net   *float64 `yaml:"net"`
	} `yaml:"manual_income"`
	Savings               *float64 `yaml:"savings"`
	HasCar                bool     `yaml:"has_car"`
	CarValue              *float64 `yaml:"car_value"`
	HasAllowances         bool     `yaml:"has_allowances"`
	MarriedAfterFirstYear *bool    `yaml:"married_after_first_year"`
}

type slipFile struct {
	Gross      *float64 `yaml:"gross"`
	Deductions *float64 `yaml:"deductions"`
	OneTime    *float64 `yaml:"one_time"`
}

// LoadApplication reads a saved application state from a YAML file.
func LoadApplication(path string) (*domain.ApplicationState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read application file %s: %w", path, err)
	}
	var file applicationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse application file %s: %w", path, err)
	}

	st := domain.NewApplicationState()
	st.Category = domain.ApplicantCategory(file.Category)
	if st.Category != "" && !st.Category.Valid() {
		return nil, fmt.Errorf("unknown category %q", file.Category)
	}
	st.IncomeMethod = domain.IncomeMethod(file.IncomeMethod)
	if st.IncomeMethod != domain.IncomeNone && !st.IncomeMethod.Valid() {
		return nil, fmt.Errorf("unknown income method %q", file.IncomeMethod)
	}
	if len(file.SalarySlips) > domain.SlipCount {
		return nil, fmt.Errorf("at most %d salary slips are supported, got %d", domain.SlipCount, len(file.SalarySlips))
	}
	for i, slip := range file.SalarySlips {
		st.Slips[i] = domain.SalarySlip{
			Gross:      toDecimal(slip.Gross),
			Deductions: toDecimal(slip.Deductions),
			OneTime:    toDecimal(slip.OneTime),
		}
	}
	st.Manual = domain.ManualIncome{
		Gross: toDecimal(file.ManualIncome.Gross),
		Net:   toDecimal(file.ManualIncome.Net),
	}
	st.Savings = toDecimal(file.Savings)
	st.HasCar = file.HasCar
	st.CarValue = toDecimal(file.CarValue)
	st.HasAllowances = file.HasAllowances
	st.MarriedAfterFirstYear = file.MarriedAfterFirstYear
	return st, nil
}

func toDecimal(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}
