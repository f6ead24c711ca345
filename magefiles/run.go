//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Compiles the shaders and runs the testbed host with the given configuration file.
func (Run) Testbed(config string) error {
	if err := buildShaders(); err != nil {
		return err
	}
	fmt.Println("Run testbed...")
	if _, err := executeCmd("go", withArgs("run", ".", "--config", config), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the test suite.
func (Run) Tests() error {
	if _, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}
