package gentests

import _ "embed"
import "testing"
import "github.com/vic/calcula/cmd/gentests/helper"

//go:embed input.lam
var input string

//go:embed output.lam
var output string

func Test_051_share_app_Reduction(t *testing.T) {
	gentests.CheckLambdaReduction(t, "051_share_app", input, output)
}

func Test_051_share_app_NormalOrder(t *testing.T) {
	gentests.CheckNormalOrder(t, "051_share_app", input, output)
}
