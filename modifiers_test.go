package terminput

import "testing"

func TestModifiersAlgebra(t *testing.T) {
	all := []Modifiers{ModNone, ModShift, ModAlt, ModCtrl,
		ModShift | ModAlt, ModShift | ModCtrl, ModAlt | ModCtrl,
		ModShift | ModAlt | ModCtrl}

	for _, a := range all {
		for _, b := range all {
			if got := a.Or(b).And(a); got != a {
				t.Errorf("(%v|%v)&%v = %v, want %v", a, b, a, got, a)
			}
			if got, want := a.Or(b).Without(b), a.Without(b); got != want {
				t.Errorf("(%v|%v)~%v = %v, want %v", a, b, b, got, want)
			}
		}
	}
}

func TestModifiersIdentity(t *testing.T) {
	for _, m := range []Modifiers{ModNone, ModShift, ModCtrl, ModAlt | ModShift} {
		if got := m.Or(ModNone); got != m {
			t.Errorf("%v|NONE = %v, want %v", m, got, m)
		}
		if got := m.And(ModNone); got != ModNone {
			t.Errorf("%v&NONE = %v, want NONE", m, got)
		}
	}
}

func TestModifiersHas(t *testing.T) {
	tests := []struct {
		name string
		m    Modifiers
		q    Modifiers
		want bool
	}{
		{"Single flag present", ModCtrl, ModCtrl, true},
		{"Single flag absent", ModCtrl, ModShift, false},
		{"Subset of combined", ModCtrl | ModAlt, ModAlt, true},
		{"Superset not contained", ModCtrl, ModCtrl | ModAlt, false},
		{"None never contained", ModCtrl, ModNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Has(tt.q); got != tt.want {
				t.Errorf("Expected Has to be %v, got %v", tt.want, got)
			}
		})
	}
}

func TestModifiersString(t *testing.T) {
	tests := []struct {
		m    Modifiers
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModShift, "Shift"},
		{ModCtrl | ModAlt, "Ctrl+Alt"},
		{ModCtrl | ModAlt | ModShift, "Ctrl+Alt+Shift"},
	}

	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Expected String to be %q, got %q", tt.want, got)
		}
	}
}

func TestModifiersConstantsDistinct(t *testing.T) {
	// No flag may alias another
	flags := []Modifiers{ModShift, ModAlt, ModCtrl}
	for i, a := range flags {
		for j, b := range flags {
			if i != j && a&b != 0 {
				t.Errorf("flags %v and %v overlap", a, b)
			}
		}
	}
}
