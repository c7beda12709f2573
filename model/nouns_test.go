package model

import "testing"

func TestNoun(t *testing.T) {
	n := Noun{Type: NounGroup, Value: "The Beatles"}
	if n.String() != "The Beatles" {
		t.Errorf("String() = %q", n.String())
	}
	if n.SortKey() != "beatles_+the" {
		t.Errorf("SortKey() = %q", n.SortKey())
	}
	if n.Kind() != NounGroup {
		t.Errorf("Kind() = %q", n.Kind())
	}

	empty := Noun{Type: NounThing}
	if empty.String() != Undefined {
		t.Errorf("empty noun String() = %q, want %q", empty.String(), Undefined)
	}
	if empty.SortKey() != "" {
		t.Errorf("empty noun SortKey() = %q", empty.SortKey())
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		name    Name
		display string
		sort    string
	}{
		{name: Name{Given: "John", Middle: "Q", Family: "Public"}, display: "John Q Public", sort: "public_john_q"},
		{name: Name{Given: "Mary", Family: "Van Der Berg"}, display: "Mary Van Der Berg", sort: "van_der_berg_mary"},
		{name: Name{Given: "Madonna"}, display: "Madonna", sort: "madonna"},
		{name: Name{Family: "O'Neil", Given: "Ed"}, display: "Ed O'Neil", sort: "oneil_ed"},
		{name: Name{}, display: Unknown, sort: ""},
	}
	for _, tt := range tests {
		if got := tt.name.String(); got != tt.display {
			t.Errorf("%#v String() = %q, want %q", tt.name, got, tt.display)
		}
		if got := tt.name.SortKey(); got != tt.sort {
			t.Errorf("%#v SortKey() = %q, want %q", tt.name, got, tt.sort)
		}
	}
}

func TestPlace(t *testing.T) {
	p := Place{Major: "Oxford", Minor: []string{"Jericho", "Walton Street"}}
	if got := p.String(); got != "Oxford (Jericho, Walton Street)" {
		t.Errorf("String() = %q", got)
	}
	if got := p.SortKey(); got != "oxford_jericho_walton_street" {
		t.Errorf("SortKey() = %q", got)
	}
	if got := (Place{Major: "Paris"}).String(); got != "Paris" {
		t.Errorf("String() without minor = %q", got)
	}
	if got := (Place{}).String(); got != Undefined {
		t.Errorf("empty place String() = %q", got)
	}
}

func TestCompareProper(t *testing.T) {
	a := Name{Given: "Ada", Family: "Lovelace"}
	b := Noun{Type: NounThing, Value: "Analytical Engine"}
	if CompareProper(b, a) >= 0 {
		t.Errorf("analytical_engine must sort before lovelace_ada")
	}
	if CompareProper(a, a) != 0 {
		t.Errorf("name must compare equal to itself")
	}
}

func TestParseNounsFromXML(t *testing.T) {
	log := testLogger(t)

	name := parseName(mustElement(t, `<person><given>Ada</given><family>Lovelace</family><nick>x</nick></person>`), log)
	if name.Given != "Ada" || name.Family != "Lovelace" || name.Middle != "" {
		t.Fatalf("unexpected name %#v", name)
	}

	place := parsePlace(mustElement(t, `<place><major>Oxford</major><minor>Jericho</minor><minor> </minor></place>`), log)
	if place.Major != "Oxford" || len(place.Minor) != 1 {
		t.Fatalf("unexpected place %#v", place)
	}

	actor := parseActor(mustElement(t, `<actor archivalFootage="true"><given>Rex</given></actor>`), log)
	if !actor.ArchivalFootage || actor.Given != "Rex" {
		t.Fatalf("unexpected actor %#v", actor)
	}
	actor = parseActor(mustElement(t, `<actor archivalFootage="yes"><given>Rex</given></actor>`), log)
	if actor.ArchivalFootage {
		t.Fatalf("malformed boolean literal must be false")
	}

	names := parseNames(nil, mustElement(t, `<director/>`), log)
	if len(names) != 0 {
		t.Fatalf("empty name must be skipped, got %v", names)
	}
}
