//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

var shaderDir = filepath.Join("engine", "assets", "shaders")

// Compiles the overlay HLSL into vs.cso and ps.cso with fxc.
func (Build) Shaders() error {
	return buildShaders()
}

// Builds the testbed host binary.
func (Build) Testbed() error {
	mg.Deps(Build.Shaders)
	if _, err := executeCmd("go", withArgs("build", "-o", filepath.Join("bin", "anima-overlay.exe"), "."), withStream()); err != nil {
		return err
	}
	return nil
}

func buildShaders() error {
	src := filepath.Join(shaderDir, "overlay.hlsl")
	stages := []struct {
		profile, entry, out string
	}{
		{"vs_4_0", "vs_main", "vs.cso"},
		{"ps_4_0", "ps_main", "ps.cso"},
	}
	for _, s := range stages {
		args := withArgs("/nologo", "/T", s.profile, "/E", s.entry, "/Fo", filepath.Join(shaderDir, s.out), src)
		if _, err := executeCmd("fxc", args, withStream()); err != nil {
			return err
		}
	}
	return nil
}
