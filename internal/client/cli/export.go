package cli

import (
	"context"
	"fmt"
)

// Export downloads all of the user's data as a JSON file.
func (a *App) Export(ctx context.Context) error {
	path, err := a.wellness.Export(ctx, a.config.ExportDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Export saved to %s\n", path)
	return nil
}
