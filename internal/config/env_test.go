package config

import (
	"errors"
	"testing"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("FRUITSLICE_TEST_VALUE", "apple")
	if got := GetEnv("FRUITSLICE_TEST_VALUE", "pear"); got != "apple" {
		t.Errorf("GetEnv = %q, want apple", got)
	}
	if got := GetEnv("FRUITSLICE_TEST_UNSET", "pear"); got != "pear" {
		t.Errorf("GetEnv = %q, want fallback", got)
	}
}

func TestGetEnvNumbers(t *testing.T) {
	t.Setenv("FRUITSLICE_TEST_FLOAT", "12.5")
	t.Setenv("FRUITSLICE_TEST_INT", "-42")
	t.Setenv("FRUITSLICE_TEST_EMPTY", "")
	t.Setenv("FRUITSLICE_TEST_BAD", "many")

	if f, err := GetEnvFloat("FRUITSLICE_TEST_FLOAT", 1); err != nil || f != 12.5 {
		t.Errorf("GetEnvFloat = %v, %v; want 12.5", f, err)
	}
	if f, err := GetEnvFloat("FRUITSLICE_TEST_EMPTY", 3); err != nil || f != 3 {
		t.Errorf("empty GetEnvFloat = %v, %v; want fallback", f, err)
	}
	if n, err := GetEnvInt64("FRUITSLICE_TEST_INT", 0); err != nil || n != -42 {
		t.Errorf("GetEnvInt64 = %v, %v; want -42", n, err)
	}
	if _, err := GetEnvInt64("FRUITSLICE_TEST_BAD", 0); !errors.Is(err, ErrInvalid) {
		t.Errorf("bad GetEnvInt64 error = %v, want ErrInvalid", err)
	}
	if _, err := GetEnvFloat("FRUITSLICE_TEST_BAD", 0); !errors.Is(err, ErrInvalid) {
		t.Errorf("bad GetEnvFloat error = %v, want ErrInvalid", err)
	}
}
