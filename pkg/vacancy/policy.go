package vacancy

// Field names a Record field for policy lookup and error reporting.
type Field string

const (
	FieldTitle        Field = "title"
	FieldSalaryFrom   Field = "salary_from"
	FieldSalaryTo     Field = "salary_to"
	FieldPayPeriod    Field = "pay_period"
	FieldCurrency     Field = "currency"
	FieldRegion       Field = "region"
	FieldOrganization Field = "organization"
	FieldPublishedAt  Field = "published_at"
	FieldExperience   Field = "experience"
)

// Presence is what absence of a field means.
type Presence int

const (
	// Required fields fail normalization when absent.
	Required Presence = iota

	// OptionalDefault fields take Policy.Default when absent.
	OptionalDefault

	// OptionalNullable fields stay nil when absent.
	OptionalNullable
)

func (p Presence) String() string {
	switch p {
	case Required:
		return "required"
	case OptionalDefault:
		return "optional-default"
	default:
		return "optional-nullable"
	}
}

// Policy is one row of the policy table.
type Policy struct {
	Presence Presence
	Default  string
}

// Policies is consulted for every field the normalizer extracts. An absent
// area or employer block resolves to an empty name rather than an error.
var Policies = map[Field]Policy{
	FieldTitle:        {Presence: Required},
	FieldPublishedAt:  {Presence: Required},
	FieldRegion:       {Presence: OptionalDefault, Default: ""},
	FieldOrganization: {Presence: OptionalDefault, Default: ""},
	FieldSalaryFrom:   {Presence: OptionalNullable},
	FieldSalaryTo:     {Presence: OptionalNullable},
	FieldPayPeriod:    {Presence: OptionalNullable},
	FieldCurrency:     {Presence: OptionalNullable},
	FieldExperience:   {Presence: OptionalNullable},
}

// resolveText applies the policy for field to an extracted (value, ok) pair.
// For Required fields the returned error is a *ValidationError.
func resolveText(field Field, value string, ok bool) (text string, present bool, err error) {
	if ok {
		return value, true, nil
	}
	switch policy := Policies[field]; policy.Presence {
	case Required:
		return "", false, &ValidationError{Field: field, Reason: "missing"}
	case OptionalDefault:
		return policy.Default, true, nil
	default:
		return "", false, nil
	}
}

// nullableText resolves an OptionalNullable field to a pointer.
func nullableText(field Field, value string, ok bool) *string {
	text, present, err := resolveText(field, value, ok)
	if err != nil || !present {
		return nil
	}
	return &text
}
