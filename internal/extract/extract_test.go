package extract

import "testing"

func TestPhoneNumber(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "My number is 9811264318", "9811264318"},
		{"first match wins", "9811264318 or 8448721780", "9811264318"},
		{"too short", "call 981126431", ""},
		{"too long", "call 98112643181", ""},
		{"embedded in word", "x9811264318", ""},
		{"none", "no digits here", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PhoneNumber(tc.in); got != tc.want {
				t.Fatalf("PhoneNumber(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestOrderID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "where is order 12345ABC?", "12345ABC"},
		{"lowercase letters rejected", "order 12345abc", ""},
		{"four digits rejected", "order 1234ABC", ""},
		{"first match wins", "12345ABC then 67890DEF", "12345ABC"},
		{"none", "nothing", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OrderID(tc.in); got != tc.want {
				t.Fatalf("OrderID(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTicketNo(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "your ticket is AB1234", "AB1234"},
		{"three letters rejected", "ABC1234", ""},
		{"first match wins", "AB1234 and CD5678", "AB1234"},
		{"none", "no ticket", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TicketNo(tc.in); got != tc.want {
				t.Fatalf("TicketNo(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestIssue(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"captures up to period", "Ticket AB1234. Issue: Screen cracked. Anything else?", "Screen cracked"},
		{"no marker", "Ticket AB1234, all good", IssueNotFound},
		{"empty clause", "Issue: .", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Issue(tc.in); got != tc.want {
				t.Fatalf("Issue(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestBothIdentifiersInOneText(t *testing.T) {
	in := "number 9811264318 about order 12345ABC"
	if got := PhoneNumber(in); got != "9811264318" {
		t.Fatalf("PhoneNumber = %q", got)
	}
	if got := OrderID(in); got != "12345ABC" {
		t.Fatalf("OrderID = %q", got)
	}
}
