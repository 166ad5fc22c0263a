package main

import (
	"reflect"
	"testing"
)

func TestParseRootArgsStopsAtSubcommand(t *testing.T) {
	orig := []string{"print", "help"}
	root, rest, err := parseRootArgs(orig)
	if err != nil {
		t.Fatalf("parseRootArgs returned error: %v", err)
	}
	if len(root.overrides) != 0 {
		t.Fatalf("expected no overrides, got %v", root.overrides)
	}
	if !reflect.DeepEqual(rest, orig) {
		t.Fatalf("expected rest to preserve args %v, got %v", orig, rest)
	}
}

func TestParseRootArgsExtractsOverrides(t *testing.T) {
	args := []string{
		"-c", "prompt=me$",
		"--enable", "Hyperlinks, clock",
		"-disable=card",
		"serve", "--addr", ":9000",
	}
	root, rest, err := parseRootArgs(args)
	if err != nil {
		t.Fatalf("parseRootArgs returned error: %v", err)
	}
	want := []string{
		"prompt=me$",
		"features.hyperlinks=true",
		"features.clock=true",
		"features.card=false",
	}
	if !reflect.DeepEqual(root.overrides, want) {
		t.Fatalf("unexpected overrides: got %v, want %v", root.overrides, want)
	}
	if got := root.with([]string{"title=x"}); !reflect.DeepEqual(got, append(want, "title=x")) {
		t.Fatalf("with() = %v", got)
	}
	if !reflect.DeepEqual(rest, []string{"serve", "--addr", ":9000"}) {
		t.Fatalf("unexpected rest args: %v", rest)
	}
}

func TestParseRootArgsRejectsBadInput(t *testing.T) {
	cases := map[string][]string{
		"unknown feature": {"--enable", "teleport"},
		"missing equals":  {"-c", "prompt"},
		"empty key":       {"-c", "=x"},
		"help":            {"-h"},
	}
	for name, args := range cases {
		if _, _, err := parseRootArgs(args); err == nil {
			t.Fatalf("%s: expected error for %v", name, args)
		}
	}
}
