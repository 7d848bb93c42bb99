package generator

import (
	"fmt"

	"github.com/erraggy/oasts/emit"
)

// WriteFiles writes all generated files to the specified output directory.
// The directory is created if it doesn't exist.
func (r *GenerateResult) WriteFiles(outputDir string) error {
	sink := emit.DirSink{Dir: outputDir}
	for _, file := range r.Files {
		err := sink.Artifact(file.Name, func(ctx emit.Context) error {
			ctx.Write(string(file.Content))
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to write file %s: %w", file.Name, err)
		}
	}
	return nil
}
