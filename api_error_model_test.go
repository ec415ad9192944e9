package kensho_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/reoring/kensho"
	g "github.com/reoring/kensho/dsl"
)

// TestErrorModel_CollectVsFailFast_And_AsIssues compares Collect versus
// Fail-Fast behavior and exercises both AsIssues and errors.As helpers.
func TestErrorModel_CollectVsFailFast_And_AsIssues(t *testing.T) {
	ctx := context.Background()
	user := g.Object().
		Field("id", g.String()).Required().
		Field("email", g.String().Email()).Required().
		UnknownStrict().
		MustBuild()

	data := []byte(`{"email": 1, "zzz": true}`)

	// Collect mode: gather every issue
	_, err := kensho.ParseFrom(ctx, user, kensho.JSONBytes(data))
	var iss kensho.Issues
	if !errors.As(err, &iss) {
		t.Fatalf("expected errors.As to extract Issues, got: %v", err)
	}
	want := []string{"/email", "/id", "/zzz"}
	if !reflect.DeepEqual(iss.Paths(), want) {
		t.Fatalf("want %v, got %v", want, iss.Paths())
	}

	// Fail-Fast: stop at the first issue
	_, err = kensho.ParseFrom(ctx, user, kensho.JSONBytes(data), kensho.ParseOpt{FailFast: true})
	iss2, ok := kensho.AsIssues(err)
	if !ok || len(iss2) != 1 || iss2[0].Path != "/email" || iss2[0].Code != kensho.CodeInvalidType {
		t.Fatalf("expected a single invalid_type at /email, got: %v", err)
	}
}

// TestErrorModel_DeterministicOrder checks that known fields come first in
// key order, followed by unknown keys in key order.
func TestErrorModel_DeterministicOrder(t *testing.T) {
	ctx := context.Background()
	obj := g.Object().
		Field("c", g.String()).Required().
		Field("a", g.String()).Required().
		Field("b", g.String()).Required().
		UnknownStrict().
		MustBuild()

	data := []byte(`{"zzz":1,"yyy":2}`)
	for i := 0; i < 5; i++ {
		_, err := kensho.ParseFrom(ctx, obj, kensho.JSONBytes(data))
		iss, _ := kensho.AsIssues(err)
		want := []string{"/a", "/b", "/c", "/yyy", "/zzz"}
		if !reflect.DeepEqual(iss.Paths(), want) {
			t.Fatalf("want %v, got %v", want, iss.Paths())
		}
	}
}
