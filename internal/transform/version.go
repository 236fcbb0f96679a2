package transform

import (
	"os/exec"
	"strings"

	"github.com/hashicorp/go-version"
)

// ProbeVersion asks the driver for its version and returns it in
// normalized form. GCC's -dumpfullversion gives the full triple where
// plain -dumpversion may be truncated to the major release; clang
// answers -dumpversion as well. An unparseable or failing probe
// degrades to an empty string, never an error.
func ProbeVersion(driver, dir string) string {
	for _, flag := range []string{"-dumpfullversion", "-dumpversion"} {
		cmd := exec.Command(driver, flag)
		cmd.Dir = dir
		out, err := cmd.Output()
		if err != nil {
			continue
		}
		v, err := version.NewVersion(strings.TrimSpace(string(out)))
		if err != nil {
			continue
		}
		return v.String()
	}
	return ""
}
