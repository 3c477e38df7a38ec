package main

import (
	"testing"
)

func Test_hello(t *testing.T) {
	t.Parallel()

	got := hello()
	want := "Hello, World!"
	if got != want {
		t.Fatalf("hello() = %q; want %q", got, want)
	}
}
