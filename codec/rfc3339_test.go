package codec

import (
	"context"
	"testing"
	"time"

	"github.com/reoring/kensho"
)

func TestTimeRFC3339_Codec_Basic(t *testing.T) {
	c := TimeRFC3339()
	ctx := context.Background()

	in := "2025-01-01T00:00:00Z"
	got, err := c.Decode(ctx, in)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}

	out, err := c.Encode(ctx, got)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if out != in {
		t.Fatalf("roundtrip mismatch: %s != %s", out, in)
	}
}

func TestTimeRFC3339_Decode_Offset_NormalizedOnEncode(t *testing.T) {
	c := TimeRFC3339()
	ctx := context.Background()

	got, err := c.Decode(ctx, "2023-01-01T09:00:00.500+09:00")
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	out, err := c.Encode(ctx, got)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if out != "2023-01-01T00:00:00.5Z" {
		t.Fatalf("unexpected canonical output: %q", out)
	}
}

func TestTimeRFC3339_Decode_InvalidFormat(t *testing.T) {
	c := TimeRFC3339()
	for _, in := range []string{"", "2023-01-01", "not a date", "2023-13-01T00:00:00Z"} {
		_, err := c.Decode(context.Background(), in)
		iss, ok := kensho.AsIssues(err)
		if !ok || len(iss) != 1 {
			t.Fatalf("%q: expected one issue, got %v", in, err)
		}
		if iss[0].Code != kensho.CodeInvalidFormat {
			t.Fatalf("%q: expected invalid_format, got %s", in, iss[0].Code)
		}
	}
}

func TestTimeRFC3339_InOutSchemas(t *testing.T) {
	c := TimeRFC3339()
	ctx := context.Background()
	if err := c.In().Validate(ctx, 1); err == nil {
		t.Fatalf("wire schema accepted a number")
	}
	if err := c.Out().Validate(ctx, time.Now()); err != nil {
		t.Fatalf("domain schema rejected time.Time: %v", err)
	}
	sch, err := c.In().JSONSchema()
	if err != nil || sch.Format != "date-time" {
		t.Fatalf("unexpected json schema: %+v %v", sch, err)
	}
}
