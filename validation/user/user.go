// Package user validates user records: a UUID id, a 3 to 20 character name,
// an email address, an age between 0 and 150, a gender and a creation time.
package user

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/reoring/kensho"
	g "github.com/reoring/kensho/dsl"
	"github.com/reoring/kensho/i18n"
)

// Name length bounds, in characters.
const (
	NameMin = 3
	NameMax = 20
)

// Age bounds, inclusive.
const (
	AgeMin = 0
	AgeMax = 150
)

// Genders lists the accepted gender values.
var Genders = []string{"male", "female", "other"}

// User is the typed projection of a valid record.
type User struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email" yaml:"email"`
	Age       int       `json:"age" yaml:"age"`
	Gender    string    `json:"gender" yaml:"gender"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

var schema = sync.OnceValue(func() kensho.Schema[map[string]any] {
	return g.Object().
		Field("id", g.String().UUID()).Required().
		Field("name", g.String().Min(NameMin).Max(NameMax)).Required().
		Field("email", g.String().Email()).Required().
		Field("age", g.Int().Min(AgeMin).Max(AgeMax)).Required().
		Field("gender", g.Enum(Genders...)).Required().
		Field("createdAt", g.DateTime()).Required().
		UnknownStrip().
		MustBuild()
})

// Schema returns the record schema. It is built once and shared.
func Schema() kensho.Schema[map[string]any] { return schema() }

// IsValidateUser reports whether candidate is a valid user record. It accepts
// any value and never panics.
func IsValidateUser(candidate any) bool {
	return IsValid(context.Background(), candidate)
}

// IsValid is IsValidateUser with a caller supplied context.
func IsValid(ctx context.Context, candidate any) bool {
	return Validate(ctx, candidate) == nil
}

// Validate returns kensho.Issues describing every failing field, or nil.
func Validate(ctx context.Context, candidate any) (err error) {
	_, err = Parse(ctx, candidate)
	return err
}

// Parse validates candidate and projects it into a User.
func Parse(ctx context.Context, candidate any) (u User, err error) {
	defer func() {
		if r := recover(); r != nil {
			u, err = User{}, rootIssue(kensho.CodeInvalidType, fmt.Sprintf("unsupported value: %v", r))
		}
	}()
	m, err := normalize(candidate)
	if err != nil {
		return User{}, err
	}
	v, err := Schema().Parse(ctx, m)
	if err != nil {
		return User{}, err
	}
	return project(v), nil
}

// ParseJSON decodes one JSON record. Duplicate keys are rejected unless opts
// say otherwise.
func ParseJSON(ctx context.Context, data []byte, opts ...kensho.ParseOpt) (User, error) {
	return parseFrom(ctx, kensho.JSONBytes(data), opts)
}

// ParseYAML decodes the first YAML document as one record.
func ParseYAML(ctx context.Context, data []byte, opts ...kensho.ParseOpt) (User, error) {
	return parseFrom(ctx, kensho.YAMLBytes(data), opts)
}

func parseFrom(ctx context.Context, src kensho.Source, opts []kensho.ParseOpt) (User, error) {
	opt := kensho.ParseOpt{Strictness: kensho.Strictness{OnDuplicateKey: kensho.Error}}
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	v, err := kensho.ParseFrom(ctx, Schema(), src, opt)
	if err != nil {
		return User{}, err
	}
	return project(v), nil
}

// normalize turns candidate into the untyped form the schema checks.
// Structs and foreign maps go through a JSON round trip so struct tags and
// time.Time marshaling apply.
func normalize(candidate any) (map[string]any, error) {
	if candidate == nil {
		return nil, rootIssue(kensho.CodeInvalidType, "expected object, got null")
	}
	if m, ok := candidate.(map[string]any); ok {
		return m, nil
	}
	rv := reflect.ValueOf(candidate)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, rootIssue(kensho.CodeInvalidType, "expected object, got nil pointer")
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct, reflect.Map:
	default:
		return nil, rootIssue(kensho.CodeInvalidType, "expected object, got "+rv.Kind().String())
	}
	b, err := json.Marshal(candidate)
	if err != nil {
		return nil, rootIssue(kensho.CodeInvalidType, err.Error())
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil || out == nil {
		return nil, rootIssue(kensho.CodeInvalidType, "expected object")
	}
	return out, nil
}

func project(v map[string]any) User {
	u := User{}
	u.ID, _ = v["id"].(string)
	u.Name, _ = v["name"].(string)
	u.Email, _ = v["email"].(string)
	if age, ok := v["age"].(int64); ok {
		u.Age = int(age)
	}
	u.Gender, _ = v["gender"].(string)
	u.CreatedAt, _ = v["createdAt"].(time.Time)
	return u
}

func rootIssue(code, hint string) kensho.Issues {
	return kensho.Issues{{Path: "/", Code: code, Message: i18n.T(code, nil), Hint: hint}}
}
