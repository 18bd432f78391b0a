package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/vic/calcula/pkg/lambda"
)

type TestCase struct {
	Name   string
	Input  string
	Output string
}

const testTemplate = `package gentests

import _ "embed"
import "testing"
import "github.com/vic/calcula/cmd/gentests/helper"

//go:embed input.lam
var input string

//go:embed output.lam
var output string

func Test_%s_Reduction(t *testing.T) {
	gentests.CheckLambdaReduction(t, "%s", input, output)
}
`

var tests = []TestCase{
	// Identity
	{"001_id", "λx.x", "λy.y"},
	{"002_id_id", "(λx.x) (λy.y)", "λz.z"},

	// K Combinator (Erasure)
	{"003_k_1", "(λx.λy.x) a b", "a"},
	{"004_k_2", "(λx.λy.y) a b", "b"},
	{"005_erase_complex", "(λx.λy.x) a ((λz.z) b)", "a"},

	// S Combinator (Sharing)
	{"006_s_1", "(λx.λy.λz.x z (y z)) (λa.λb.a) (λc.λd.c) e", "e"},
	{"007_s_2", "(λx.λy.λz.x z (y z)) (λa.λb.b) (λc.λd.c) e", "λd.e"},

	// Church Numerals
	{"010_zero", "(λf.λx.x) f x", "x"},
	{"011_one", "(λf.λx.f x) f x", "f x"},
	{"012_two", "(λf.λx.f (f x)) f x", "f (f x)"},
	{"013_succ_0", "(λn.λf.λx.f (n f x)) (λf.λx.x) f x", "f x"},
	{"014_succ_1", "(λn.λf.λx.f (n f x)) (λf.λx.f x) f x", "f (f x)"},
	{"015_add_1_1", "(λm.λn.λf.λx.m f (n f x)) (λf.λx.f x) (λf.λx.f x) f x", "f (f x)"},
	{"016_mul_2_2", "(λm.λn.λf.m (n f)) (λf.λx.f (f x)) (λf.λx.f (f x)) f x", "f (f (f (f x)))"},

	// Logic
	{"020_true", "(λx.λy.x) a b", "a"},
	{"021_false", "(λx.λy.y) a b", "b"},
	{"022_not_true", "(λb.b (λx.λy.y) (λx.λy.x)) (λx.λy.x) a b", "b"},
	{"023_not_false", "(λb.b (λx.λy.y) (λx.λy.x)) (λx.λy.y) a b", "a"},
	{"024_and_true_true", "(λp.λq.p q p) (λx.λy.x) (λx.λy.x) a b", "a"},
	{"025_and_true_false", "(λp.λq.p q p) (λx.λy.x) (λx.λy.y) a b", "b"},

	// Pairs
	{"030_pair_fst", "(λp.p (λx.λy.x)) ((λx.λy.λf.f x y) a b)", "a"},
	{"031_pair_snd", "(λp.p (λx.λy.y)) ((λx.λy.λf.f x y) a b)", "b"},

	// Let bindings, written as the application they stand for
	{"040_let_simple", "(λx.x) a", "a"},
	{"041_let_id", "(λi.i a) (λx.x)", "a"},
	{"042_let_nested", "(λx.(λy.x) b) a", "a"},
	{"043_let_shadow", "(λx.(λx.x) b) a", "b"},

	// Complex / Stress
	{"050_deep_app", "(λx.x x x) (λy.y)", "λy.y"},
	{"051_share_app", "(λf.f (f x)) (λy.y)", "x"},

	{"060_pow_2_3", "(λb.λe.e b) (λf.λx.f (f x)) (λf.λx.f (f (f x))) f x", "f (f (f (f (f (f (f (f x)))))))"},

	// Sharing
	{"070_share_complex", "(λx.x (x a)) (λy.y)", "a"},

	// Erasure of shared term
	{"071_erase_shared", "(λx.λy.y) ((λz.z) a) b", "b"},

	{"072_self_app", "(λx.x x) (λy.y)", "λy.y"},

	// Nested Lambdas
	{"080_nested_1", "λx.λy.λz.x y z", "λx.λy.λz.x y z"},
	{"081_nested_app", "(λx.λy.x y) a b", "a b"},

	// Free variables
	{"090_free_1", "x", "x"},
	{"091_free_app", "x y", "x y"},
	{"092_free_abs", "λy.x y", "λy.x y"},
	{"093_free_capture", "(λx.λy.x) y", "λz.y"},

	// Mixed
	{"100_mixed_1", "(λx.x) ((λy.y) a)", "a"},
}

func main() {
	if err := generate("cmd/gentests/generated", tests); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d tests\n", len(tests))
}

// generate writes one directory per case under baseDir. It stops at the
// first case that does not parse or cannot be written.
func generate(baseDir string, tests []TestCase) error {
	for _, tc := range tests {
		// Both sides must parse before anything is written
		if _, err := lambda.Parse[lambda.Pure](tc.Input); err != nil {
			return errors.Wrapf(err, "parsing input for %s", tc.Name)
		}
		if _, err := lambda.Parse[lambda.Pure](tc.Output); err != nil {
			return errors.Wrapf(err, "parsing output for %s", tc.Name)
		}

		dir := filepath.Join(baseDir, tc.Name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}

		files := []struct {
			name    string
			content string
		}{
			{"input.lam", tc.Input + "\n"},
			{"output.lam", tc.Output + "\n"},
			{"reduction_test.go", fmt.Sprintf(testTemplate, tc.Name, tc.Name)},
		}
		for _, f := range files {
			path := filepath.Join(dir, f.name)
			if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
				return errors.Wrapf(err, "writing %s", path)
			}
		}
	}
	return nil
}
