package gewe

import (
	"strings"
	"testing"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	ep := &Endpoint{Name: "Ping", Area: "tools", Route: "/tools/ping", Fields: []Field{{Wire: "appId"}}}
	if err := r.Register(ep); err != nil {
		t.Fatalf("register: %v", err)
	}

	if !r.Has("Ping") {
		t.Fatal("Has(Ping) = false")
	}
	if r.Has("nonexistent") {
		t.Fatal("Has(nonexistent) = true")
	}

	got, err := r.Resolve("/tools/ping")
	if err != nil {
		t.Fatalf("resolve route: %v", err)
	}
	if got != ep {
		t.Fatalf("resolve route returned %v", got)
	}
	if got, err = r.Resolve("Ping"); err != nil || got != ep {
		t.Fatalf("resolve name: %v %v", got, err)
	}
}

func TestRegistry_DuplicateRegister(t *testing.T) {
	r := NewRegistry()

	r.Register(&Endpoint{Name: "Dup", Route: "/a"})

	if err := r.Register(&Endpoint{Name: "Dup", Route: "/b"}); err == nil {
		t.Fatal("expected error for duplicate name")
	}
	if err := r.Register(&Endpoint{Name: "Other", Route: "/a"}); err == nil {
		t.Fatal("expected error for duplicate route")
	}
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Resolve("unknown"); err == nil {
		t.Fatal("expected error for unknown endpoint")
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	r := NewRegistry()

	r.Register(&Endpoint{Name: "Charlie", Area: "b", Route: "/b/charlie"})
	r.Register(&Endpoint{Name: "Alpha", Area: "b", Route: "/b/alpha"})
	r.Register(&Endpoint{Name: "Zulu", Area: "a", Route: "/a/zulu"})

	eps := r.List()
	if len(eps) != 3 {
		t.Fatalf("expected 3 endpoints, got %d", len(eps))
	}
	if eps[0].Name != "Zulu" || eps[1].Name != "Alpha" || eps[2].Name != "Charlie" {
		t.Fatalf("not sorted: %v %v %v", eps[0].Name, eps[1].Name, eps[2].Name)
	}

	names := r.Names()
	if names[0] != "Alpha" || names[1] != "Charlie" || names[2] != "Zulu" {
		t.Fatalf("names not sorted: %v", names)
	}
}

func TestDefaultRegistry_Table(t *testing.T) {
	eps := DefaultRegistry.List()
	if len(eps) != 67 {
		t.Fatalf("expected 67 endpoints, got %d", len(eps))
	}

	counts := map[string]int{}
	for _, ep := range eps {
		counts[ep.Area]++
		if !strings.HasPrefix(ep.Route, "/"+ep.Area+"/") {
			t.Errorf("%s: route %s outside area %s", ep.Name, ep.Route, ep.Area)
		}
		if ep.Name == "GetToken" {
			if len(ep.Fields) != 0 {
				t.Errorf("GetToken has fields: %v", ep.Fields)
			}
			continue
		}
		if len(ep.Fields) == 0 {
			t.Errorf("%s has no fields", ep.Name)
		}
		seen := map[string]bool{}
		for _, f := range ep.Fields {
			if seen[f.Wire] {
				t.Errorf("%s: duplicate field %s", ep.Name, f.Wire)
			}
			seen[f.Wire] = true
		}
	}

	want := map[string]int{
		"tools": 2, "login": 5, "personal": 6, "message": 16,
		"contacts": 9, "group": 22, "favor": 3, "label": 4,
	}
	for area, n := range want {
		if counts[area] != n {
			t.Errorf("area %s: expected %d endpoints, got %d", area, n, counts[area])
		}
	}
}

func TestDefaultRegistry_CorrectedRoutes(t *testing.T) {
	tests := []struct {
		name  string
		route string
		field string
	}{
		{"AddContacts", "/contacts/addContacts", "v3"},
		{"AgreeJoinRoom", "/group/agreeJoinRoom", "url"},
		{"SaveContractList", "/group/saveContractList", "operType"},
	}
	for _, tt := range tests {
		ep, ok := DefaultRegistry.Lookup(tt.name)
		if !ok {
			t.Fatalf("%s not registered", tt.name)
		}
		if ep.Route != tt.route {
			t.Errorf("%s: route = %s, want %s", tt.name, ep.Route, tt.route)
		}
		found := false
		for _, f := range ep.Fields {
			if f.Wire == tt.field {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: missing field %s", tt.name, tt.field)
		}
	}
}
