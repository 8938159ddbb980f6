package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestFetchErrorNamesURL(t *testing.T) {
	err := NewFetch("https://example.org/feed.xml", errors.New("connection refused"))
	want := "could not fetch 'https://example.org/feed.xml': connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	inner := errors.New("unexpected EOF")
	err := NewParseWrap("Response body is not valid XML.", inner)
	if !errors.Is(err, inner) {
		t.Error("ParseError should unwrap to the inner error")
	}
	if err.Error() != "Response body is not valid XML.: unexpected EOF" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestIngestErrorWrapsCause(t *testing.T) {
	tests := []struct {
		name  string
		cause error
	}{
		{name: "fetch cause", cause: NewFetch("https://example.org", nil)},
		{name: "parse cause", cause: NewParse("Unsupported content type: expected an Atom <feed> document.")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewIngest("GDS blog", tt.cause)
			if !errors.Is(err, tt.cause) {
				t.Error("IngestError should unwrap to its cause")
			}

			var fe *FetchError
			var pe *ParseError
			gotFetch := errors.As(err, &fe)
			gotParse := errors.As(err, &pe)
			if gotFetch == gotParse {
				t.Errorf("exactly one cause kind should match, got fetch=%v parse=%v", gotFetch, gotParse)
			}
		})
	}
}

func TestIngestErrorMessage(t *testing.T) {
	err := NewIngest("GDS blog", fmt.Errorf("boom"))
	if err.Error() != "sync failed for source GDS blog: boom" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
