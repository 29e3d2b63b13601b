package llm

import "testing"

func TestUnmarshalTolerantClean(t *testing.T) {
	var titles []string
	err := unmarshalTolerant(`["Abstract", "Introduction"]`, &titles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(titles) != 2 || titles[0] != "Abstract" {
		t.Errorf("unexpected titles %v", titles)
	}
}

func TestUnmarshalTolerantWrapped(t *testing.T) {
	response := "Here are the section titles:\n```json\n[\"Abstract\", \"Method\"]\n```\nLet me know if you need more."
	var titles []string
	if err := unmarshalTolerant(response, &titles); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(titles) != 2 || titles[1] != "Method" {
		t.Errorf("unexpected titles %v", titles)
	}
}

func TestUnmarshalTolerantMalformed(t *testing.T) {
	var titles []string
	if err := unmarshalTolerant("I could not read the document.", &titles); err == nil {
		t.Fatal("expected an error for a response without an array")
	}
}

func TestNewUnsupportedProvider(t *testing.T) {
	if _, err := New(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Fatal("expected an error for an unknown provider")
	}
}
