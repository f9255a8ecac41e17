// Package main is the entry point for erpctl, the operator CLI of the ERP.
package main

import (
	"os"

	"github.com/SscSPs/scaffold_erp/cmd/erpctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
