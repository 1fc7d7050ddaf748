//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds the binary and probes the framebuffer described by rendertargets.toml.
func (Run) Probe() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run probe...")
	if _, err := executeCmd("bin/rendertargets", withArgs("-config", "rendertargets.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
