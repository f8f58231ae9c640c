//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Validates every GLSL stage under assets/shaders with glslangValidator.
func (Build) Shaders() error {
	sources, err := shaderSources()
	if err != nil {
		return err
	}
	for _, src := range sources {
		if _, err := executeCmd("glslangValidator", withArgs(src)); err != nil {
			return err
		}
	}
	return nil
}

// Tidies the module and builds the lizual binary.
func (Build) Engine() error {
	mg.Deps(goTidy)
	_, err := executeCmd("go", withArgs("build", "-o", "bin/lizual", "."), withStream())
	return err
}

type Test mg.Namespace

// Runs the unit tests with the race detector.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}
