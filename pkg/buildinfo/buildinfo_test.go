package buildinfo

import (
	"fmt"
	"testing"

	. "github.com/zem-editor/zem/pkg/prog/progtest"
)

func TestProgram(t *testing.T) {
	Test(t, &Program{},
		ThatZem("-version").WritesStdout(Value.Version+"\n"),
		ThatZem("-version", "-json").WritesStdout(mustToJSON(Value.Version)+"\n"),
		ThatZem("-buildinfo").WritesStdout(fmt.Sprintf(
			"Version: %v\nGo version: %v\n", Value.Version, Value.GoVersion)),
		ThatZem("-buildinfo", "-json").WritesStdout(mustToJSON(Value)+"\n"),
		ThatZem().ExitsWith(2).WritesStderrContaining("internal error"),
	)
}
