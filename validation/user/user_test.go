package user_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/kensho"
	"github.com/reoring/kensho/validation/user"
)

func validRecord() map[string]any {
	return map[string]any{
		"id":        "550e8400-e29b-41d4-a716-446655440000",
		"name":      "Taro",
		"email":     "taro@example.com",
		"age":       30,
		"gender":    "male",
		"createdAt": time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
	}
}

func with(key string, v any) map[string]any {
	m := validRecord()
	m[key] = v
	return m
}

func without(key string) map[string]any {
	m := validRecord()
	delete(m, key)
	return m
}

func TestIsValidateUser_WellFormed(t *testing.T) {
	assert.True(t, user.IsValidateUser(validRecord()))
}

func TestIsValidateUser_InvalidUUID(t *testing.T) {
	assert.False(t, user.IsValidateUser(with("id", "invalid-uuid")))
}

func TestIsValidateUser_NameBounds(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Taro", true},
		{"山田太郎", true},
		{"Tom", true},
		{"山田", false},
		{"Al", false},
		{"", false},
		{"abcdefghijklmnopqrst", true},
		{"abcdefghijklmnopqrstu", false},
		{"あいうえおかきくけこさしすせそたちつてと", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, user.IsValidateUser(with("name", tt.name)))
		})
	}
}

func TestIsValidateUser_FieldConstraints(t *testing.T) {
	tests := []struct {
		desc  string
		input map[string]any
	}{
		{"bad email", with("email", "taro.example.com")},
		{"negative age", with("age", -1)},
		{"age too big", with("age", 151)},
		{"fractional age", with("age", 30.5)},
		{"age as string", with("age", "30")},
		{"unknown gender", with("gender", "unknown")},
		{"date string not rfc3339", with("createdAt", "2024/01/15")},
		{"zero time", with("createdAt", time.Time{})},
		{"createdAt number", with("createdAt", 1705311000)},
		{"missing id", without("id")},
		{"missing createdAt", without("createdAt")},
		{"null name", with("name", nil)},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.False(t, user.IsValidateUser(tt.input))
		})
	}
}

func TestIsValidateUser_AcceptedVariants(t *testing.T) {
	assert.True(t, user.IsValidateUser(with("createdAt", "2024-01-15T09:30:00+09:00")))
	assert.True(t, user.IsValidateUser(with("age", 0)))
	assert.True(t, user.IsValidateUser(with("age", 150)))
	assert.True(t, user.IsValidateUser(with("age", 30.0)))
	assert.True(t, user.IsValidateUser(with("gender", "other")))
	assert.True(t, user.IsValidateUser(with("nickname", "extra keys are ignored")))
}

func TestIsValidateUser_TotalOnArbitraryInput(t *testing.T) {
	var nilUser *user.User
	inputs := []any{
		nil,
		"string",
		42,
		[]any{validRecord()},
		map[string]any{},
		nilUser,
		make(chan int),
		func() {},
		map[string]any{"id": make(chan int)},
		map[string]chan int{"id": make(chan int)},
		struct{ X func() }{X: func() {}},
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			assert.False(t, user.IsValidateUser(in))
		})
	}
}

func TestIsValidateUser_Deterministic(t *testing.T) {
	in := with("name", "山田")
	first := user.IsValidateUser(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, user.IsValidateUser(in))
	}
}

func TestIsValidateUser_Structs(t *testing.T) {
	u := user.User{
		ID:        "550e8400-e29b-41d4-a716-446655440000",
		Name:      "山田太郎",
		Email:     "yamada@example.jp",
		Age:       42,
		Gender:    "female",
		CreatedAt: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, user.IsValidateUser(u))
	assert.True(t, user.IsValidateUser(&u))

	u.CreatedAt = time.Time{}
	assert.False(t, user.IsValidateUser(u))

	type wire struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Age       int    `json:"age"`
		Gender    string `json:"gender"`
		CreatedAt string `json:"createdAt"`
	}
	assert.True(t, user.IsValidateUser(wire{
		ID: "550e8400-e29b-41d4-a716-446655440000", Name: "Taro", Email: "taro@example.com",
		Age: 30, Gender: "male", CreatedAt: "2024-01-15T09:30:00Z",
	}))
}

func TestValidate_ReportsFailingPaths(t *testing.T) {
	ctx := context.Background()
	in := with("name", "山田")
	in["id"] = "invalid-uuid"
	in["age"] = 200

	err := user.Validate(ctx, in)
	iss, ok := kensho.AsIssues(err)
	require.True(t, ok, "expected Issues, got %v", err)
	assert.Equal(t, []string{"/age", "/id", "/name"}, iss.Paths())
	assert.Equal(t, kensho.CodeTooBig, iss[0].Code)
	assert.Equal(t, kensho.CodeInvalidFormat, iss[1].Code)
	assert.Equal(t, kensho.CodeTooShort, iss[2].Code)

	require.NoError(t, user.Validate(ctx, validRecord()))
	assert.Equal(t, user.IsValidateUser(in), user.Validate(ctx, in) == nil)
}

func TestValidate_NilIsInvalidType(t *testing.T) {
	iss, ok := kensho.AsIssues(user.Validate(context.Background(), nil))
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, "/", iss[0].Path)
	assert.Equal(t, kensho.CodeInvalidType, iss[0].Code)
}

func TestParse_Projection(t *testing.T) {
	u, err := user.Parse(context.Background(), with("createdAt", "2024-01-15T18:30:00+09:00"))
	require.NoError(t, err)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", u.ID)
	assert.Equal(t, "Taro", u.Name)
	assert.Equal(t, 30, u.Age)
	assert.Equal(t, "male", u.Gender)
	assert.True(t, u.CreatedAt.Equal(time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)))
}

func TestParseJSON(t *testing.T) {
	ctx := context.Background()
	doc := `{"id":"550e8400-e29b-41d4-a716-446655440000","name":"Taro","email":"taro@example.com","age":30,"gender":"male","createdAt":"2024-01-15T09:30:00Z"}`
	u, err := user.ParseJSON(ctx, []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "taro@example.com", u.Email)

	dup := `{"id":"550e8400-e29b-41d4-a716-446655440000","name":"Taro","name":"Jiro","email":"taro@example.com","age":30,"gender":"male","createdAt":"2024-01-15T09:30:00Z"}`
	_, err = user.ParseJSON(ctx, []byte(dup))
	iss, ok := kensho.AsIssues(err)
	require.True(t, ok, "expected Issues, got %v", err)
	assert.Equal(t, kensho.CodeDuplicateKey, iss[0].Code)
	assert.Equal(t, "/name", iss[0].Path)

	_, err = user.ParseJSON(ctx, []byte(`{"id":`))
	require.Error(t, err)

	_, err = user.ParseJSON(ctx, []byte(`{"id":"550e8400-e29b-41d4-a716-446655440000","name":"Taro","email":"taro@example.com","age":30.5,"gender":"male","createdAt":"2024-01-15T09:30:00Z"}`))
	iss, _ = kensho.AsIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, "/age", iss[0].Path)
	assert.Equal(t, kensho.CodeInvalidType, iss[0].Code)
}

func TestParseJSON_DeepNestingIsBounded(t *testing.T) {
	const depth = 1000000
	doc := `{"id":` + strings.Repeat("[", depth) + strings.Repeat("]", depth) + `}`
	_, err := user.ParseJSON(context.Background(), []byte(doc))
	iss, ok := kensho.AsIssues(err)
	require.True(t, ok, "want issues, got %v", err)
	require.Len(t, iss, 1)
	assert.Equal(t, kensho.CodeParseError, iss[0].Code)
	assert.True(t, strings.HasPrefix(iss[0].Path, "/id/0/0"), iss[0].Path)
}

func TestParseYAML(t *testing.T) {
	doc := `
id: 550e8400-e29b-41d4-a716-446655440000
name: 山田太郎
email: yamada@example.jp
age: 42
gender: other
createdAt: 2024-01-15T09:30:00Z
`
	u, err := user.ParseYAML(context.Background(), []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "山田太郎", u.Name)
	assert.Equal(t, 42, u.Age)

	_, err = user.ParseYAML(context.Background(), []byte("name: 山田\n"))
	require.Error(t, err)
}

func TestSchema_JSONSchema(t *testing.T) {
	sch, err := user.Schema().JSONSchema()
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "createdAt", "email", "gender", "id", "name"}, sch.Required)
	assert.Equal(t, "uuid", sch.Properties["id"].Format)
	assert.Equal(t, 20, *sch.Properties["name"].MaxLength)
	assert.Equal(t, "date-time", sch.Properties["createdAt"].Format)
}
