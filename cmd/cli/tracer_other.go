//go:build !linux

package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func (a *app) runTracer(cmd *cobra.Command) error {
	return errors.New("keystroke capture is only supported on Linux")
}
