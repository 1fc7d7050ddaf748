//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the rendertargets binary into ./bin.
func (Build) Binary() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/rendertargets", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the unit tests of every package.
func Test() error {
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}
