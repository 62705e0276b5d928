// Package templates carries the compiled-in default command and job-script
// templates. Each machine profile names its defaults here; the CLI can
// override any of them with a file path.
package templates

import "embed"

//go:embed command/*.txt sbatch/*.txt
var files embed.FS

// Command returns the default command template with the given name.
func Command(name string) string {
	return mustRead("command/" + name + ".txt")
}

// Sbatch returns the default job-script template with the given name.
func Sbatch(name string) string {
	return mustRead("sbatch/" + name + ".txt")
}

func mustRead(path string) string {
	data, err := files.ReadFile(path)
	if err != nil {
		// Embedded files are fixed at compile time; a miss is a programmer error.
		panic(err)
	}
	return string(data)
}
