// Package main provides the dsgtool CLI application.
// dsgtool converts CSV cruise data into trajectory DSG files and
// inspects existing ones.
package main

import (
	"os"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
