package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData_Defaults(t *testing.T) {
	var b bytes.Buffer
	PrintBuildData(&b)
	assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: N/A\n", b.String())
}

func TestPrintBuildData_Stamped(t *testing.T) {
	orig := buildVersion
	t.Cleanup(func() { buildVersion = orig })
	buildVersion = "v1.2.3"

	var b bytes.Buffer
	PrintBuildData(&b)
	assert.Contains(t, b.String(), "Build version: v1.2.3\n")
}
