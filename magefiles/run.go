//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Validates the shaders and runs the testbed with lizual.toml.
func (Run) Engine() error {
	mg.Deps(Build.Shaders)
	fmt.Println("Run engine...")
	_, err := executeCmd("go", withArgs("run", ".", "run"), withStream())
	return err
}

// Runs the testbed starting at the given scene.
func (Run) Scene(name string) error {
	mg.Deps(Build.Shaders)
	_, err := executeCmd("go", withArgs("run", ".", "run", "--scene", name), withStream())
	return err
}

// Runs the testbed with the key=value configuration file.
func (Run) Legacy() error {
	_, err := executeCmd("go", withArgs("run", ".", "run", "--legacy-config", "lizual.cfg"), withStream())
	return err
}
