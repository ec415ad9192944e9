// Package dsl provides the schema builders used to declare kensho schemas.
//
// Overview
//   - Builder API: declare JSON object semantics (unknown/required/default/refine) with Object()/Field()/Required()/UnknownStrict()/MustBuild().
//   - Primitives: String()/Enum()/Int()/DateTime() with chainable rules (Min/Max/UUID/Email/Regex/OneOf).
//   - AnyAdapter: adapt an existing Schema[T] via `SchemaOf[T](s)` to embed it into builders; wrap with Nullable to accept null.
//
// File layout (roles)
//   - adapter.go: AnyAdapter, SchemaOf and Nullable.
//   - string.go, int.go, datetime.go: primitive schemas.
//   - object_builder.go: objectBuilder/fieldStep and Build/MustBuild.
//   - object_core.go: objectSchema (Parse/Validate/JSONSchema/Refine).
//
// Example (quickstart)
//
//	obj := g.Object().
//	    Field("id",    g.String().UUID()).Required().
//	    Field("email", g.String().Email()).Required().
//	    Field("role",  g.Enum("admin", "member")).Default("member").
//	    UnknownStrict().
//	    MustBuild()
//	v, err := kensho.ParseFrom(ctx, obj, kensho.JSONBytes(data))
//
// Example (Refine: cross-field validation)
//
//	obj := g.Object().
//	    Field("password", g.String().Min(8)).Required().
//	    Field("confirm",  g.String()).Required().
//	    Refine("confirm==password", func(ctx context.Context, m map[string]any) error {
//	        if m["password"] != m["confirm"] {
//	            return fmt.Errorf("confirm must match password")
//	        }
//	        return nil
//	    }).
//	    MustBuild()
//	// A plain error is returned as an Issue with code "custom" at "/".
//
// JSON Schema output
//
//	sch, _ := obj.JSONSchema()
//	// UnknownStrict => additionalProperties=false, UnknownStrip => true
package dsl
