package mongo

import (
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

func TestFreelancerSearchFilter(t *testing.T) {
	f := freelancerSearchFilter("c++")

	role, ok := f["role"].(bson.M)
	if !ok {
		t.Fatalf("missing role filter: %+v", f)
	}
	labels, ok := role["$in"].([]string)
	if !ok || len(labels) != len(domain.FreelancerRoleLabels) {
		t.Fatalf("unexpected role labels: %+v", role["$in"])
	}

	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected two $or branches, got %+v", f["$or"])
	}
	for i, branch := range or {
		m := branch.(bson.M)
		for field, v := range m {
			re, ok := v.(primitive.Regex)
			if !ok {
				t.Fatalf("branch %d: %s is not a regex", i, field)
			}
			if re.Options != "i" {
				t.Fatalf("branch %d: expected case-insensitive regex", i)
			}
			compiled := regexp.MustCompile("(?i)" + re.Pattern)
			if !compiled.MatchString("knows C++ well") || compiled.MatchString("c") {
				t.Fatalf("branch %d: pattern %q is not a literal substring match", i, re.Pattern)
			}
		}
	}
}

func TestUsernameIndex(t *testing.T) {
	if opts := usernameIndex(false).Options; opts.Unique != nil && *opts.Unique {
		t.Fatalf("non-unique index requested but unique set")
	}
	opts := usernameIndex(true).Options
	if opts.Unique == nil || !*opts.Unique {
		t.Fatalf("expected unique index")
	}
}

func TestStaleUsernameIndex(t *testing.T) {
	for _, unique := range []bool{false, true} {
		stale := staleUsernameIndex(unique)
		if current := *usernameIndex(unique).Options.Name; stale == current {
			t.Fatalf("unique=%v: stale index %q must differ from the one created", unique, stale)
		}
		if other := *usernameIndex(!unique).Options.Name; stale != other {
			t.Fatalf("unique=%v: expected to drop %q, got %q", unique, other, stale)
		}
	}
}

func TestIsMissingIndex(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{mongo.CommandError{Code: 27, Name: "IndexNotFound"}, true},
		{fmt.Errorf("drop: %w", mongo.CommandError{Code: 26, Name: "NamespaceNotFound"}), true},
		{mongo.CommandError{Code: 13, Name: "Unauthorized"}, false},
		{errors.New("connection reset"), false},
	}
	for _, tc := range cases {
		if got := isMissingIndex(tc.err); got != tc.want {
			t.Fatalf("isMissingIndex(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestUserDocument_RoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := newUserDocument(&domain.User{
		Username: "anna", PasswordHash: "hash", Role: domain.RoleFreelancer, Skills: "Go", CreatedAt: now,
	})
	if doc.ID.IsZero() {
		t.Fatalf("expected generated object id")
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["password"] != "hash" || m["role"] != "freelancer" {
		t.Fatalf("unexpected stored fields: %+v", m)
	}

	u, err := doc.toDomain()
	if err != nil {
		t.Fatalf("toDomain: %v", err)
	}
	if u.ID != doc.ID.Hex() || u.Username != "anna" || u.Role != domain.RoleFreelancer {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUserDocument_Validation(t *testing.T) {
	cases := []userDocument{
		{Role: "client"},
		{Username: "x", Role: "admin"},
	}
	for _, d := range cases {
		if _, err := d.toDomain(); !errors.Is(err, domain.ErrMalformedDocument) {
			t.Fatalf("%+v: expected ErrMalformedDocument, got %v", d, err)
		}
	}

	legacy := userDocument{Username: "old", Role: "freelancer "}
	u, err := legacy.toDomain()
	if err != nil || u.Role != domain.RoleFreelancer {
		t.Fatalf("legacy role label should decode, got %+v, %v", u, err)
	}
}

func TestProjectAndReviewDocument_Validation(t *testing.T) {
	if _, err := (projectDocument{Title: "t"}).toDomain(); !errors.Is(err, domain.ErrMalformedDocument) {
		t.Fatalf("project without owner: expected ErrMalformedDocument, got %v", err)
	}
	if p, err := (projectDocument{Title: "t", Owner: "fred"}).toDomain(); err != nil || p.OwnerUsername != "fred" {
		t.Fatalf("unexpected project: %+v, %v", p, err)
	}

	if _, err := (reviewDocument{Target: "a", Author: "b"}).toDomain(); !errors.Is(err, domain.ErrMalformedDocument) {
		t.Fatalf("review without text: expected ErrMalformedDocument, got %v", err)
	}
	if rv, err := (reviewDocument{Target: "a", Author: "b", Text: "ok"}).toDomain(); err != nil || rv.Text != "ok" {
		t.Fatalf("unexpected review: %+v, %v", rv, err)
	}
}

func TestReviewQueryShape(t *testing.T) {
	if f := reviewsByTargetFilter("alice"); f["user_username"] != "alice" {
		t.Fatalf("unexpected filter: %+v", f)
	}
	sort, ok := newestFirst().Sort.(bson.D)
	if !ok || len(sort) != 1 || sort[0].Key != "created_at" || sort[0].Value != -1 {
		t.Fatalf("unexpected sort: %+v", newestFirst().Sort)
	}
}
