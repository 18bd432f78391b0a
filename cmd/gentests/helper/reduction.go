package gentests

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/vic/calcula/pkg/lambda"
)

// MaxSteps bounds every reduction so a wrong case fails instead of hanging.
const MaxSteps = 100_000

// Parse parses input and output with one name table, so a free name in the
// expected output denotes the same variable as in the input.
func Parse(t *testing.T, inputStr, outputStr string) (lambda.PureTerm, lambda.PureTerm) {
	t.Helper()
	names := lambda.Names{}

	term, err := lambda.ParseWith[lambda.Pure](strings.TrimSpace(inputStr), names)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if outputStr == "" {
		return term, nil
	}

	expected, err := lambda.ParseWith[lambda.Pure](strings.TrimSpace(outputStr), names)
	if err != nil {
		t.Fatalf("Parse error for expected output: %v", err)
	}
	return term, expected
}

func CheckLambdaReduction(t *testing.T, testName string, inputStr string, outputStr string) {
	t.Helper()
	term, expectedTerm := Parse(t, inputStr, outputStr)

	reducer := lambda.Reducer[lambda.Pure]{MaxSteps: MaxSteps}
	start := time.Now()
	actualTerm, err := reducer.Reduce(context.Background(), term)
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("%s: reduction failed: %v", testName, err)
	}

	// Both sides are compared by their normal forms up to renaming of
	// bound variables; free variables must be the same.
	if !lambda.Equal(actualTerm, expectedTerm) {
		t.Errorf("Mismatch in %s:\nInput: %s\nExpected: %s\nActual:   %s",
			testName, strings.TrimSpace(inputStr), lambda.Debug(expectedTerm), lambda.Debug(actualTerm))
	}

	stats := reducer.Stats()
	t.Logf("%s: %d beta reductions, %d renames in %v", testName, stats.BetaReductions, stats.Renames, elapsed)
}

// CheckNormalOrder steps the input leftmost-outermost until no redex is
// left and checks that it agrees with CheckLambdaReduction's result.
func CheckNormalOrder(t *testing.T, testName string, inputStr string, outputStr string) {
	t.Helper()
	term, expectedTerm := Parse(t, inputStr, outputStr)

	steps := 0
	for ; steps < MaxSteps; steps++ {
		next, ok := lambda.Step(term)
		if !ok {
			break
		}
		term = next
	}
	if steps == MaxSteps {
		t.Fatalf("%s: no normal form after %d steps", testName, steps)
	}

	if lambda.StructurallyEqual(term, lambda.Reduce(expectedTerm, false), nil) != lambda.VerdictEqual {
		t.Errorf("Mismatch in %s (normal order):\nExpected: %s\nActual:   %s",
			testName, lambda.Debug(expectedTerm), lambda.Debug(term))
	}
	t.Logf("%s: %d normal order steps", testName, steps)
}

// CheckStepLimit reduces a term without a normal form and checks that the
// reducer gives up after exactly limit beta reductions.
func CheckStepLimit(t *testing.T, testName string, inputStr string, limit uint64) {
	t.Helper()
	term, _ := Parse(t, inputStr, "")

	reducer := lambda.Reducer[lambda.Pure]{MaxSteps: limit}
	_, err := reducer.Reduce(context.Background(), term)
	if !errors.Is(err, lambda.ErrStepLimit) {
		t.Fatalf("%s: expected step limit error, got %v", testName, err)
	}
	if got := reducer.Stats().BetaReductions; got != limit {
		t.Errorf("%s: performed %d beta reductions, expected %d", testName, got, limit)
	}
	t.Logf("%s: %v", testName, err)
}

// Size counts the nodes of term.
func Size(term lambda.PureTerm) int {
	switch t := term.(type) {
	case lambda.Var[lambda.Pure]:
		return 1
	case lambda.Abs[lambda.Pure]:
		return 1 + Size(t.Body)
	case lambda.App[lambda.Pure]:
		return 1 + Size(t.Fun) + Size(t.Arg)
	default:
		return 0
	}
}
