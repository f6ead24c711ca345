//go:build !windows

package testbed

import (
	"context"
	"errors"
)

var errUnsupportedHost = errors.New("the testbed host needs Direct3D 11 and only runs on windows")

func Run(ctx context.Context, configPath string) error {
	return errUnsupportedHost
}
