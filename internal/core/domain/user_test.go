package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		err  error
	}{
		{"client", RoleClient, nil},
		{"Client", RoleClient, nil},
		{"freelancer", RoleFreelancer, nil},
		{"freelancer ", RoleFreelancer, nil},
		{"executor", RoleFreelancer, nil},
		{"admin", "", ErrInvalidRole},
		{"", "", ErrInvalidRole},
	}

	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if !errors.Is(err, tc.err) {
			t.Fatalf("ParseRole(%q): expected err %v, got %v", tc.in, tc.err, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRole(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestFreelancerRoleLabels_AllParseAsFreelancer(t *testing.T) {
	for _, label := range FreelancerRoleLabels {
		r, err := ParseRole(label)
		if err != nil || r != RoleFreelancer {
			t.Fatalf("label %q: got %q, %v", label, r, err)
		}
	}
}

func TestSession_HasRole(t *testing.T) {
	var nilSession *Session
	if nilSession.HasRole(RoleClient) {
		t.Fatalf("nil session must not have a role")
	}

	s := &Session{Username: "alice", Role: RoleClient}
	if !s.HasRole(RoleClient) {
		t.Fatalf("expected client role")
	}
	if s.HasRole(RoleFreelancer) {
		t.Fatalf("client session must not pass freelancer check")
	}
}
