package vacancy

import "testing"

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in   string
		want Variant
		ok   bool
	}{
		{"basic", VariantBasic, true},
		{"frequency", VariantFrequencyAware, true},
		{"frequency-aware", VariantFrequencyAware, true},
		{"weekly", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseVariant(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseVariant(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPolicies_CoverEveryField(t *testing.T) {
	fields := []Field{
		FieldTitle, FieldSalaryFrom, FieldSalaryTo, FieldPayPeriod, FieldCurrency,
		FieldRegion, FieldOrganization, FieldPublishedAt, FieldExperience,
	}
	for _, f := range fields {
		if _, ok := Policies[f]; !ok {
			t.Errorf("no policy for %s", f)
		}
	}

	if Policies[FieldTitle].Presence != Required || Policies[FieldPublishedAt].Presence != Required {
		t.Error("title and published_at must be required")
	}
	if Policies[FieldRegion].Presence != OptionalDefault || Policies[FieldOrganization].Presence != OptionalDefault {
		t.Error("region and organization must default on absence")
	}
}

func TestPresence_String(t *testing.T) {
	if Required.String() != "required" || OptionalDefault.String() != "optional-default" || OptionalNullable.String() != "optional-nullable" {
		t.Error("unexpected Presence strings")
	}
}
