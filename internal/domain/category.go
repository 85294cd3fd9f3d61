package domain

// ApplicantCategory identifies one of the eight benefit tracks. The category
// alone selects the ceiling and the formula used by the evaluator.
type ApplicantCategory string

const (
	MotherOrPregnant32 ApplicantCategory = "mother_or_pregnant_32"
	Pregnant14         ApplicantCategory = "pregnant_14"
	Worker             ApplicantCategory = "worker"
	Student30Plus      ApplicantCategory = "student_30_plus"
	StudentUnder30     ApplicantCategory = "student_under_30"
	HighSchoolStudent  ApplicantCategory = "high_school_student"
	NewImmigrant       ApplicantCategory = "new_immigrant"
	SoldierSpouse      ApplicantCategory = "soldier_spouse"
)

// FormulaKind selects the evaluator branch for a category. The evaluator
// dispatches on this, never on the category identity itself, so the standard
// formula exists exactly once.
type FormulaKind int

const (
	// FormulaPlain is the standard adjusted-net formula.
	FormulaPlain FormulaKind = iota
	// FormulaBracket is the gross-income step function (mothers / week-32 pregnancies).
	FormulaBracket
	// FormulaMinimumGated is the standard formula behind a minimum-gross gate.
	FormulaMinimumGated
	// FormulaStudentFloor is the standard formula with a full-eligibility floor.
	FormulaStudentFloor
)

// AllCategories returns every category in presentation order.
func AllCategories() []ApplicantCategory {
	return []ApplicantCategory{
		MotherOrPregnant32,
		Pregnant14,
		Worker,
		Student30Plus,
		StudentUnder30,
		HighSchoolStudent,
		NewImmigrant,
		SoldierSpouse,
	}
}

// Valid reports whether c is one of the known categories.
func (c ApplicantCategory) Valid() bool {
	switch c {
	case MotherOrPregnant32, Pregnant14, Worker, Student30Plus,
		StudentUnder30, HighSchoolStudent, NewImmigrant, SoldierSpouse:
		return true
	}
	return false
}

// Formula returns the evaluator branch for the category.
func (c ApplicantCategory) Formula() FormulaKind {
	switch c {
	case MotherOrPregnant32:
		return FormulaBracket
	case Worker:
		return FormulaMinimumGated
	case Student30Plus, StudentUnder30:
		return FormulaStudentFloor
	default:
		return FormulaPlain
	}
}

// IsStudent reports whether the category is one of the two academic student
// tracks, which carry the marriage-timing gate and the full-eligibility floor.
func (c ApplicantCategory) IsStudent() bool {
	return c == Student30Plus || c == StudentUnder30
}

// CanSelectNotWorking reports whether the "not working" income method is a
// sensible choice for the category. Worker requires a minimum income and a
// soldier-spouse applicant is a serving servicemember, so the UIs hide the
// option for both. The validator stays permissive; this is a UI hint.
func (c ApplicantCategory) CanSelectNotWorking() bool {
	return c != Worker && c != SoldierSpouse
}

// Title returns the human-readable category name.
func (c ApplicantCategory) Title() string {
	switch c {
	case MotherOrPregnant32:
		return "Mother of a child / pregnancy from week 32"
	case Pregnant14:
		return "Pregnancy from week 14"
	case Worker:
		return "Working / not a mother"
	case Student30Plus:
		return "Student (30+ weekly hours)"
	case StudentUnder30:
		return "Student (16-29 weekly hours)"
	case HighSchoolStudent:
		return "High-school / vocational course (35+ weekly hours)"
	case NewImmigrant:
		return "New immigrant"
	case SoldierSpouse:
		return "Soldier's spouse in service"
	default:
		return string(c)
	}
}

// VisibleCategories filters all down to the selectable subset, preserving
// order. hidden holds category identifiers excluded by the hosting settings
// store; the engine never reads that store directly.
func VisibleCategories(all []ApplicantCategory, hidden map[ApplicantCategory]bool) []ApplicantCategory {
	visible := make([]ApplicantCategory, 0, len(all))
	for _, c := range all {
		if !hidden[c] {
			visible = append(visible, c)
		}
	}
	return visible
}
