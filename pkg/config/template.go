package config

import "strings"

// templateHeader is the comment block written at the top of generated
// configuration files.
const templateHeader = `# gocfail configuration
# Compile-fail fixtures are source files annotated with the diagnostics
# they must produce, e.g.:
#
#     let x: u32 = "nope"; //~ ERROR[E0308]
#                          //~| error: mismatched types
#
# The command template must emit JSON diagnostics on stderr and contain
# the {source} placeholder exactly once; {outdir} is replaced with a
# temporary directory that is removed after the run.`

// GenerateTemplate renders a starter configuration file for `gocfail init`.
func GenerateTemplate() ([]byte, error) {
	body, err := NewConfig().ToYAML()
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(templateHeader)
	b.WriteString("\n\n")
	b.Write(body)

	return []byte(b.String()), nil
}
