// Package configcmd implements the init-config CLI command.
package configcmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"bookdepth/pkg/dictionary"
	"bookdepth/pkg/storage"
)

// InitAction writes the default dictionary config so it can be edited.
// Refuses to overwrite an existing file.
func InitAction(c *cli.Context) error {
	path := c.String("config")
	if storage.HasFile(path) {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := dictionary.Save(path, dictionary.Default()); err != nil {
		return err
	}
	fmt.Printf("Wrote default dictionary config to %s\n", path)
	return nil
}
