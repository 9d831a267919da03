// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix derives the command name shown in CLI usage and examples
// from the invoked executable path, on [POSIX] and Windows alike.
//
//	rootCmd := &cobra.Command{Use: posix.CommandName("tls-cert-validator")}
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
