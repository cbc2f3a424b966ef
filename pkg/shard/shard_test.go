package shard

import (
	"errors"
	"testing"
)

func TestFromJSON(t *testing.T) {
	s, err := FromJSON([]byte(`{"filehash": "2032e", "filename": "report.pdf"}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if s.Hash() != "2032e" {
		t.Errorf("expected hash 2032e, got %q", s.Hash())
	}
	if s.Filename() != "report.pdf" {
		t.Errorf("expected filename report.pdf, got %q", s.Filename())
	}
	if s.Key() != "" {
		t.Errorf("expected no key, got %q", s.Key())
	}
	if s.URI() != "2032e" {
		t.Errorf("expected URI to equal hash, got %q", s.URI())
	}
}

func TestFromJSONWithKey(t *testing.T) {
	s, err := FromJSON([]byte(`{"filehash": "2032e", "key": "1b7e"}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if s.URI() != "2032e?key=1b7e" {
		t.Errorf("expected URI with key component, got %q", s.URI())
	}
}

func TestFromJSONMissingHash(t *testing.T) {
	if _, err := FromJSON([]byte(`{"filename": "report.pdf"}`)); !errors.Is(err, ErrNoHash) {
		t.Errorf("expected ErrNoHash, got %v", err)
	}
}

func TestFromJSONMalformed(t *testing.T) {
	if _, err := FromJSON([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParseURI(t *testing.T) {
	s, err := ParseURI("2032e")
	if err != nil {
		t.Fatalf("ParseURI: %v", err)
	}
	if s.Hash() != "2032e" || s.Key() != "" {
		t.Errorf("unexpected shard: hash=%q key=%q", s.Hash(), s.Key())
	}
}

func TestParseURIWithKey(t *testing.T) {
	s, err := ParseURI("2032e?key=1b7e")
	if err != nil {
		t.Fatalf("ParseURI: %v", err)
	}
	if s.Hash() != "2032e" || s.Key() != "1b7e" {
		t.Errorf("unexpected shard: hash=%q key=%q", s.Hash(), s.Key())
	}
	// Round trip
	if s.URI() != "2032e?key=1b7e" {
		t.Errorf("URI round trip failed: %q", s.URI())
	}
}

func TestParseURIInvalid(t *testing.T) {
	for _, uri := range []string{"", "?key=1b7e", "2032e?1b7e", "2032e?key="} {
		if _, err := ParseURI(uri); err == nil {
			t.Errorf("ParseURI(%q): expected error", uri)
		}
	}
}
