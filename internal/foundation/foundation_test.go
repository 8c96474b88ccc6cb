package foundation

import (
	"errors"
	"strings"
	"testing"
)

type joinedErrors []error

func (j joinedErrors) Error() string {
	parts := make([]string, 0, len(j))
	for _, e := range j {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

func TestResult(t *testing.T) {
	t.Run("Ok result", func(t *testing.T) {
		result := Ok[string, error]("success")

		if !result.IsOk() {
			t.Error("Expected result to be Ok")
		}
		value, ok := result.Value()
		if !ok || value != "success" {
			t.Errorf("Expected Value() to return 'success', got %q", value)
		}
		if _, isErr := result.Error(); isErr {
			t.Error("Expected Error() to report no error")
		}
	})

	t.Run("Err result", func(t *testing.T) {
		testErr := errors.New("test error")
		result := Err[string, error](testErr)

		if result.IsOk() {
			t.Error("Expected result to not be Ok")
		}
		err, isErr := result.Error()
		if !isErr || !errors.Is(err, testErr) {
			t.Error("Expected Error() to return the test error")
		}
		if _, ok := result.Value(); ok {
			t.Error("Expected Value() to report no value")
		}
	})

	t.Run("Match", func(t *testing.T) {
		var got string
		Ok[string, error]("a").Match(func(v string) { got = v }, func(error) { got = "err" })
		if got != "a" {
			t.Errorf("Expected onOk to run, got %q", got)
		}
		Err[string, error](errors.New("x")).Match(func(v string) { got = v }, func(error) { got = "err" })
		if got != "err" {
			t.Errorf("Expected onErr to run, got %q", got)
		}
	})

	t.Run("ToTuple never returns typed nil", func(t *testing.T) {
		result := Ok[int, joinedErrors](3)
		v, err := result.ToTuple()
		if v != 3 || err != nil {
			t.Errorf("Expected (3, nil), got (%d, %v)", v, err)
		}
	})
}

func TestFold(t *testing.T) {
	combine := func(errs []error) joinedErrors { return joinedErrors(errs) }

	t.Run("all ok keeps order", func(t *testing.T) {
		items := []Result[int, error]{Ok[int, error](1), Ok[int, error](2), Ok[int, error](3)}
		folded := Fold(items, combine)

		values, ok := folded.Value()
		if !ok {
			t.Fatal("Expected folded result to be Ok")
		}
		if len(values) != 3 || values[0] != 1 || values[2] != 3 {
			t.Errorf("Expected [1 2 3], got %v", values)
		}
	})

	t.Run("any failure discards values", func(t *testing.T) {
		e1 := errors.New("first")
		e2 := errors.New("second")
		items := []Result[int, error]{
			Ok[int, error](1),
			Err[int, error](e1),
			Ok[int, error](3),
			Err[int, error](e2),
		}
		folded := Fold(items, combine)

		if folded.IsOk() {
			t.Fatal("Expected folded result to be Err")
		}
		errs, _ := folded.Error()
		if len(errs) != 2 || errs[0] != e1 || errs[1] != e2 {
			t.Errorf("Expected both errors in order, got %v", errs)
		}
	})

	t.Run("empty input is ok", func(t *testing.T) {
		folded := Fold([]Result[int, error]{}, combine)
		values, ok := folded.Value()
		if !ok || len(values) != 0 {
			t.Errorf("Expected empty Ok, got %v (ok=%v)", values, ok)
		}
	})
}
