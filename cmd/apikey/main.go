// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command apikey prints the digest of an ingestion API key for the API_KEY_HASHES setting.
//
// # Usage
//
//	echo -n "$KEY" | apikey
//
// The key is read from stdin so that it never appears in the shell history.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/taibuivan/cadenza/internal/platform/sec"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	key, err := bufio.NewReader(os.Stdin).ReadString('\n')
	key = strings.TrimSpace(key)
	if key == "" {
		logger.Error("empty_api_key", slog.Any("error", err))
		os.Exit(1)
	}

	hash, err := sec.HashAPIKey(key)
	if err != nil {
		logger.Error("hash_failed", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Println(hash)
}
