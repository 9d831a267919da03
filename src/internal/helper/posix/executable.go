// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"strings"
)

// CommandName returns the name the program was invoked as, or fallback when
// os.Args carries no usable name.
func CommandName(fallback string) string {
	return ExecutableName(os.Args, fallback)
}

// ExecutableName returns the base name of args[0] without a trailing ".exe".
// Both '/' and '\' are treated as separators so that Windows paths resolve
// the same way on every platform.
func ExecutableName(args []string, fallback string) string {
	if len(args) == 0 {
		return fallback
	}

	parts := strings.FieldsFunc(args[0], func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return fallback
	}

	name := strings.TrimSuffix(parts[len(parts)-1], ".exe")
	if name == "" || name == "." || name == ".." {
		return fallback
	}
	return name
}
