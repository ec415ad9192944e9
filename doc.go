// Package kensho provides:
//
// - Type-safe validation based on Schema (Parse/Validate/ValidateValue) and wire <-> domain conversion via Codec
// - A stable error model via Issues (JSON Pointer, code, message)
// - JSON and YAML token sources with duplicate-key/depth/size enforcement; depth and size are bounded by default
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the DSL under dsl/, codecs under codec/, and the CLI under cmd/kensho.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := dsl.Object().
//	    Field("id", dsl.SchemaOf(dsl.String().UUID())).Required().
//	    MustBuild()
//	v, err := kensho.ParseFrom(ctx, s, kensho.JSONBytes(data))
//
// The user record validator built on top of this package lives in
// validation/user.
package kensho
