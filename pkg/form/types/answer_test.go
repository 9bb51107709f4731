package types

import "testing"

func TestAnswerAsString(t *testing.T) {
	cases := []struct {
		name   string
		answer interface{}
		want   string
		ok     bool
	}{
		{"string", "hello", "hello", true},
		{"float without trailing zeros", float64(7), "7", true},
		{"float with fraction", float64(2.5), "2.5", true},
		{"int", 3, "3", true},
		{"bool", true, "true", true},
		{"array is not scalar", []string{"a"}, "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := AnswerAsString(c.answer)
			if got != c.want || ok != c.ok {
				t.Errorf("got (%q, %t), want (%q, %t)", got, ok, c.want, c.ok)
			}
		})
	}
}

func TestAnswerAsFloat(t *testing.T) {
	t.Run("numeric string parses", func(t *testing.T) {
		got, ok := AnswerAsFloat(" 4.5 ")
		if !ok || got != 4.5 {
			t.Errorf("got (%f, %t)", got, ok)
		}
	})
	t.Run("non-numeric string fails", func(t *testing.T) {
		if _, ok := AnswerAsFloat("four"); ok {
			t.Error("expected failure")
		}
	})
	t.Run("bool does not coerce", func(t *testing.T) {
		if _, ok := AnswerAsFloat(true); ok {
			t.Error("expected failure")
		}
	})
}

func TestAnswerAsStringSlice(t *testing.T) {
	t.Run("decoded json array", func(t *testing.T) {
		items, ok := AnswerAsStringSlice([]interface{}{"a", float64(2)})
		if !ok || len(items) != 2 || items[1] != "2" {
			t.Errorf("got (%v, %t)", items, ok)
		}
	})
	t.Run("scalar is not a slice", func(t *testing.T) {
		if _, ok := AnswerAsStringSlice("a"); ok {
			t.Error("expected failure")
		}
	})
}

func TestIsAnswerEmpty(t *testing.T) {
	cases := []struct {
		name   string
		answer interface{}
		want   bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"whitespace string", "  ", true},
		{"empty array", []string{}, true},
		{"empty record", map[string]string{}, true},
		{"zero number", float64(0), false},
		{"false bool", false, false},
		{"filled array", []string{"a"}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsAnswerEmpty(c.answer); got != c.want {
				t.Errorf("got %t, want %t", got, c.want)
			}
		})
	}
}
